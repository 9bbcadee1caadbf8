// internal/model/message_store.go
package model

import (
	"fmt"
	"strings"
)

// ChannelMessageStore holds one message per selected channel. Setters on a
// channel that is not selected do nothing and report false.
type ChannelMessageStore struct {
	messages map[Channel]*ChannelMessage
}

func NewChannelMessageStore() *ChannelMessageStore {
	return &ChannelMessageStore{messages: make(map[Channel]*ChannelMessage)}
}

func (s *ChannelMessageStore) open(ch Channel) {
	if _, ok := s.messages[ch]; ok {
		return
	}
	m := emptyMessage()
	s.messages[ch] = &m
}

func (s *ChannelMessageStore) drop(ch Channel) {
	delete(s.messages, ch)
}

// Has reports whether ch currently has a message.
func (s *ChannelMessageStore) Has(ch Channel) bool {
	_, ok := s.messages[ch]
	return ok
}

// Get returns a copy of the message for ch.
func (s *ChannelMessageStore) Get(ch Channel) (ChannelMessage, bool) {
	m, ok := s.messages[ch]
	if !ok {
		return ChannelMessage{}, false
	}
	return m.Clone(), true
}

func (s *ChannelMessageStore) SetText(ch Channel, text string) bool {
	m, ok := s.messages[ch]
	if !ok {
		return false
	}
	m.Text = text
	return true
}

// SetSubject stores the subject even when the channel has no subject line;
// it is simply ignored downstream.
func (s *ChannelMessageStore) SetSubject(ch Channel, subject string) bool {
	m, ok := s.messages[ch]
	if !ok {
		return false
	}
	m.Subject = &subject
	return true
}

func (s *ChannelMessageStore) AddImage(ch Channel, ref string) bool {
	m, ok := s.messages[ch]
	if !ok {
		return false
	}
	m.Images = append(m.Images, ref)
	return true
}

// RemoveImage deletes the image at index. An out of range index is a no-op.
func (s *ChannelMessageStore) RemoveImage(ch Channel, index int) bool {
	m, ok := s.messages[ch]
	if !ok {
		return false
	}
	if index < 0 || index >= len(m.Images) {
		return true
	}
	images := make([]string, 0, len(m.Images)-1)
	images = append(images, m.Images[:index]...)
	images = append(images, m.Images[index+1:]...)
	m.Images = images
	return true
}

// Set replaces the whole message for ch.
func (s *ChannelMessageStore) Set(ch Channel, msg ChannelMessage) bool {
	if _, ok := s.messages[ch]; !ok {
		return false
	}
	c := msg.Clone()
	s.messages[ch] = &c
	return true
}

// SeedAll copies msg into every channel present in the store. Each channel
// gets its own copy; later edits stay independent.
func (s *ChannelMessageStore) SeedAll(msg ChannelMessage) {
	for ch := range s.messages {
		c := msg.Clone()
		s.messages[ch] = &c
	}
}

func (s *ChannelMessageStore) clone() *ChannelMessageStore {
	out := NewChannelMessageStore()
	for ch, m := range s.messages {
		c := m.Clone()
		out.messages[ch] = &c
	}
	return out
}

// PlaceholderImage builds the demo image reference for the n-th image of a channel.
func PlaceholderImage(ch Channel, n int) string {
	return fmt.Sprintf("https://via.placeholder.com/400x300?text=%s+Image+%d", strings.ToUpper(string(ch)), n)
}
