// internal/model/message.go
package model

// ChannelMessage is the content sent over one channel. Limits are not
// enforced here; violations are reported by validation.
type ChannelMessage struct {
	Text    string   `json:"text"`
	Images  []string `json:"images"`
	Subject *string  `json:"subject,omitempty"`
}

// Clone returns a deep copy so callers never share the images slice.
func (m ChannelMessage) Clone() ChannelMessage {
	out := ChannelMessage{Text: m.Text, Images: make([]string, len(m.Images))}
	copy(out.Images, m.Images)
	if m.Subject != nil {
		s := *m.Subject
		out.Subject = &s
	}
	return out
}

func emptyMessage() ChannelMessage {
	return ChannelMessage{Images: []string{}}
}
