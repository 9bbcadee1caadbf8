package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appErrors "github.com/unclebandit/campaign-builder/internal/errors"
	"github.com/unclebandit/campaign-builder/internal/metrics"
	"github.com/unclebandit/campaign-builder/internal/model"
	"github.com/unclebandit/campaign-builder/internal/queue"
	"github.com/unclebandit/campaign-builder/internal/repository"
)

const (
	handoffEventType         = "campaign.draft.submitted.v1"
	defaultGenerationTimeout = 30 * time.Second
)

// DraftService drives the campaign builder: every edit goes through here
// so validation and estimates always read the latest state.
type DraftService struct {
	Drafts    repository.DraftRepositoryInterface
	Directory repository.ContactDirectory
	Generator Generator
	Queue     queue.Queue
	Tracker   *GenerationTracker
	Logger    zerolog.Logger

	GenerationTimeout time.Duration
	Producer          string

	// OnSettled, when set, observes every background generation once it has
	// been applied, failed or discarded.
	OnSettled func(GenerationStatus)
}

func NewDraftService(drafts repository.DraftRepositoryInterface, dir repository.ContactDirectory, gen Generator, q queue.Queue, log zerolog.Logger) *DraftService {
	return &DraftService{
		Drafts:            drafts,
		Directory:         dir,
		Generator:         gen,
		Queue:             q,
		Tracker:           NewGenerationTracker(),
		Logger:            log,
		GenerationTimeout: defaultGenerationTimeout,
		Producer:          "campaign-builder",
	}
}

// EstimateView is the estimate plus the segment audience size.
type EstimateView struct {
	model.EstimateResult
	SegmentReach int `json:"segment_reach"`
}

func (s *DraftService) mutate(id string, fn func(d *model.CampaignDraft) error) (model.DraftSnapshot, error) {
	var snap model.DraftSnapshot
	err := s.Drafts.Update(id, func(d *model.CampaignDraft) error {
		if err := fn(d); err != nil {
			return err
		}
		snap = d.Snapshot()
		return nil
	})
	return snap, err
}

// supersede drops the in-flight generation for target. A manual edit always
// wins over a result that has not arrived yet.
func (s *DraftService) supersede(id, target string) {
	if s.Tracker.Cancel(id, target) {
		s.Logger.Info().Str("draft_id", id).Str("target", target).Msg("generation superseded by edit")
	}
}

func (s *DraftService) CreateDraft(name string) (model.DraftSnapshot, error) {
	d := model.NewCampaignDraft(uuid.NewString(), strings.TrimSpace(name))
	if err := s.Drafts.Create(d); err != nil {
		return model.DraftSnapshot{}, err
	}
	metrics.DraftsCreated.Inc()
	s.Logger.Info().Str("draft_id", d.ID).Str("name", d.Name).Msg("draft created")
	return d.Snapshot(), nil
}

func (s *DraftService) GetDraft(id string) (model.DraftSnapshot, error) {
	var snap model.DraftSnapshot
	err := s.Drafts.View(id, func(d *model.CampaignDraft) error {
		snap = d.Snapshot()
		return nil
	})
	return snap, err
}

// ListDrafts pages through open drafts, newest first
func (s *DraftService) ListDrafts(page, pageSize int, status string) ([]model.DraftSnapshot, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	drafts, total, err := s.Drafts.ListDrafts(offset, pageSize, status)
	if err != nil {
		return nil, nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}
	return drafts, pagination, nil
}

// DiscardDraft ends the editing session. Pending generations are dropped.
func (s *DraftService) DiscardDraft(id string) error {
	if err := s.Drafts.Delete(id); err != nil {
		return err
	}
	s.Tracker.CancelDraft(id)
	s.Logger.Info().Str("draft_id", id).Msg("draft discarded")
	return nil
}

func (s *DraftService) Rename(id, name string) (model.DraftSnapshot, error) {
	return s.mutate(id, func(d *model.CampaignDraft) error {
		d.Rename(strings.TrimSpace(name))
		return nil
	})
}

func (s *DraftService) AddChannel(id string, ch model.Channel) (model.DraftSnapshot, error) {
	if ch == "" {
		return model.DraftSnapshot{}, appErrors.ErrInvalidChannel
	}
	if !ch.Valid() {
		s.Logger.Warn().Str("draft_id", id).Str("channel", string(ch)).Msg("channel not in catalog, using default limits")
	}
	return s.mutate(id, func(d *model.CampaignDraft) error {
		d.AddChannel(ch)
		return nil
	})
}

// RemoveChannel also cancels any generation targeting that channel so a
// late result cannot resurrect its message.
func (s *DraftService) RemoveChannel(id string, ch model.Channel) (model.DraftSnapshot, error) {
	return s.mutate(id, func(d *model.CampaignDraft) error {
		s.supersede(id, ChannelTarget(ch))
		d.RemoveChannel(ch)
		return nil
	})
}

func (s *DraftService) AddContact(id, contactID string) (model.DraftSnapshot, error) {
	return s.mutate(id, func(d *model.CampaignDraft) error {
		d.AddContact(contactID)
		return nil
	})
}

func (s *DraftService) RemoveContact(id, contactID string) (model.DraftSnapshot, error) {
	return s.mutate(id, func(d *model.CampaignDraft) error {
		d.RemoveContact(contactID)
		return nil
	})
}

// SelectAllContacts adds ids, or the whole directory when ids is empty.
func (s *DraftService) SelectAllContacts(ctx context.Context, id string, ids []string) (model.DraftSnapshot, error) {
	if len(ids) == 0 {
		all, err := s.Directory.ContactIDs(ctx)
		if err != nil {
			return model.DraftSnapshot{}, err
		}
		ids = all
	}
	return s.mutate(id, func(d *model.CampaignDraft) error {
		d.SelectAll(ids)
		return nil
	})
}

func (s *DraftService) ClearContacts(id string) (model.DraftSnapshot, error) {
	return s.mutate(id, func(d *model.CampaignDraft) error {
		d.ClearContacts()
		return nil
	})
}

func (s *DraftService) AddSegment(id, segmentID string) (model.DraftSnapshot, error) {
	return s.mutate(id, func(d *model.CampaignDraft) error {
		d.AddSegment(segmentID)
		return nil
	})
}

func (s *DraftService) RemoveSegment(id, segmentID string) (model.DraftSnapshot, error) {
	return s.mutate(id, func(d *model.CampaignDraft) error {
		d.RemoveSegment(segmentID)
		return nil
	})
}

// SetMessage replaces the canonical message.
func (s *DraftService) SetMessage(id string, msg model.ChannelMessage) (model.DraftSnapshot, error) {
	if msg.Images == nil {
		msg.Images = []string{}
	}
	return s.mutate(id, func(d *model.CampaignDraft) error {
		s.supersede(id, CanonicalTarget)
		d.SetMessage(msg)
		return nil
	})
}

// channelOp edits the message of ch. Any successful edit supersedes a
// generation still running for that channel.
func (s *DraftService) channelOp(id string, ch model.Channel, fn func(st *model.ChannelMessageStore) bool) (model.DraftSnapshot, error) {
	return s.mutate(id, func(d *model.CampaignDraft) error {
		if !fn(d.Messages()) {
			return appErrors.ErrChannelNotSelected
		}
		s.supersede(id, ChannelTarget(ch))
		return nil
	})
}

func (s *DraftService) SetChannelText(id string, ch model.Channel, text string) (model.DraftSnapshot, error) {
	return s.channelOp(id, ch, func(st *model.ChannelMessageStore) bool {
		return st.SetText(ch, text)
	})
}

func (s *DraftService) SetChannelSubject(id string, ch model.Channel, subject string) (model.DraftSnapshot, error) {
	return s.channelOp(id, ch, func(st *model.ChannelMessageStore) bool {
		return st.SetSubject(ch, subject)
	})
}

// AddChannelImage appends ref, or a placeholder image when ref is empty.
func (s *DraftService) AddChannelImage(id string, ch model.Channel, ref string) (model.DraftSnapshot, error) {
	return s.channelOp(id, ch, func(st *model.ChannelMessageStore) bool {
		if ref == "" {
			m, ok := st.Get(ch)
			if !ok {
				return false
			}
			ref = model.PlaceholderImage(ch, len(m.Images)+1)
		}
		return st.AddImage(ch, ref)
	})
}

// RemoveChannelImage ignores an index that is out of range.
func (s *DraftService) RemoveChannelImage(id string, ch model.Channel, index int) (model.DraftSnapshot, error) {
	return s.channelOp(id, ch, func(st *model.ChannelMessageStore) bool {
		return st.RemoveImage(ch, index)
	})
}

// ApplyToAllChannels copies the canonical message into every selected channel.
func (s *DraftService) ApplyToAllChannels(id string) (model.DraftSnapshot, error) {
	return s.mutate(id, func(d *model.CampaignDraft) error {
		for _, ch := range d.Channels() {
			s.supersede(id, ChannelTarget(ch))
		}
		d.ApplyToAllChannels()
		return nil
	})
}

// ImproveChannel rewrites a channel's text in the channel's house style.
func (s *DraftService) ImproveChannel(id string, ch model.Channel) (model.DraftSnapshot, error) {
	return s.mutate(id, func(d *model.CampaignDraft) error {
		m, ok := d.Messages().Get(ch)
		if !ok {
			return appErrors.ErrChannelNotSelected
		}
		if strings.TrimSpace(m.Text) == "" {
			return appErrors.ErrEmptyText
		}
		s.supersede(id, ChannelTarget(ch))
		d.Messages().SetText(ch, Improve(ch, m.Text))
		return nil
	})
}

func (s *DraftService) CanAdvance(id string, stage model.Stage) (bool, error) {
	var ok bool
	err := s.Drafts.View(id, func(d *model.CampaignDraft) error {
		ok = d.CanAdvance(stage)
		return nil
	})
	return ok, err
}

func (s *DraftService) Issues(id string) ([]model.ValidationIssue, error) {
	var issues []model.ValidationIssue
	err := s.Drafts.View(id, func(d *model.CampaignDraft) error {
		issues = IssuesForDraft(d)
		return nil
	})
	return issues, err
}

func (s *DraftService) Estimate(ctx context.Context, id string) (EstimateView, error) {
	var view EstimateView
	var selected []string
	err := s.Drafts.View(id, func(d *model.CampaignDraft) error {
		view.EstimateResult = Estimate(d)
		selected = d.Segments()
		return nil
	})
	if err != nil {
		return view, err
	}
	if len(selected) > 0 {
		segments, err := s.Directory.ListSegments(ctx)
		if err != nil {
			return view, err
		}
		view.SegmentReach = SegmentReach(segments, selected)
	}
	return view, nil
}

// resolveTarget maps a generation target to the channel it edits. The
// canonical target maps to the empty channel.
func resolveTarget(target string) (model.Channel, bool) {
	if target == "" || target == CanonicalTarget {
		return "", true
	}
	if strings.HasPrefix(target, "channel:") {
		ch := model.Channel(strings.TrimPrefix(target, "channel:"))
		return ch, ch != ""
	}
	return "", false
}

// begin checks the target and claims it under the draft's read lock, so a
// concurrent RemoveChannel either fails the check or cancels the claim.
func (s *DraftService) begin(id, target string) (string, error) {
	ch, ok := resolveTarget(target)
	if !ok {
		return "", appErrors.ErrInvalidChannel
	}
	var token string
	err := s.Drafts.View(id, func(d *model.CampaignDraft) error {
		if ch != "" && !d.HasChannel(ch) {
			return appErrors.ErrChannelNotSelected
		}
		var err error
		token, err = s.Tracker.Begin(id, target)
		return err
	})
	if errors.Is(err, appErrors.ErrGenerationInProgress) {
		metrics.Generations.WithLabelValues("rejected").Inc()
	}
	return token, err
}

func normalizeTarget(target string) string {
	if target == "" {
		return CanonicalTarget
	}
	return target
}

// Generate runs the generator and applies its result, blocking until it
// settles. The result is applied only if no cancel or newer request
// superseded this one in the meantime.
func (s *DraftService) Generate(ctx context.Context, id, target string, req model.GenerationRequest) (model.GeneratedContent, error) {
	target = normalizeTarget(target)
	token, err := s.begin(id, target)
	if err != nil {
		return model.GeneratedContent{}, err
	}
	content, genErr := s.runGenerator(ctx, req)
	st := s.settle(id, target, token, content, genErr)
	switch st.State {
	case GenerationFailed:
		return model.GeneratedContent{}, genErr
	case GenerationDiscarded:
		return model.GeneratedContent{}, appErrors.ErrGenerationSuperseded
	}
	return content, nil
}

// StartGeneration begins a generation in the background and returns its
// pending status right away.
func (s *DraftService) StartGeneration(id, target string, req model.GenerationRequest) (GenerationStatus, error) {
	target = normalizeTarget(target)
	token, err := s.begin(id, target)
	if err != nil {
		return GenerationStatus{}, err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.GenerationTimeout)
		defer cancel()
		content, genErr := s.runGenerator(ctx, req)
		st := s.settle(id, target, token, content, genErr)
		if s.OnSettled != nil {
			s.OnSettled(st)
		}
	}()

	st, _ := s.Tracker.Status(id, target)
	return st, nil
}

func (s *DraftService) runGenerator(ctx context.Context, req model.GenerationRequest) (model.GeneratedContent, error) {
	start := time.Now()
	content, err := s.Generator.Generate(ctx, req)
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil && !appErrors.IsGenerationFailed(err) {
		err = appErrors.NewGenerationFailed(err)
	}
	if content.Images == nil {
		content.Images = []string{}
	}
	return content, err
}

// settle applies content if token is still current for the target. A
// failure leaves the existing message untouched.
func (s *DraftService) settle(id, target, token string, content model.GeneratedContent, genErr error) GenerationStatus {
	st := GenerationStatus{DraftID: id, Target: target, Token: token, State: GenerationDiscarded, UpdatedAt: time.Now()}

	err := s.Drafts.Update(id, func(d *model.CampaignDraft) error {
		s.Tracker.Finish(id, target, token, func() (GenerationState, error) {
			if genErr != nil {
				st.State = GenerationFailed
				st.Error = genErr.Error()
				return GenerationFailed, genErr
			}
			ch, _ := resolveTarget(target)
			if ch == "" {
				d.ApplyGeneratedContent(content)
			} else if !d.ApplyGeneratedToChannel(ch, content) {
				return GenerationDiscarded, nil
			}
			st.State = GenerationApplied
			return GenerationApplied, nil
		})
		return nil
	})
	if err != nil && !appErrors.IsNotFound(err) {
		s.Logger.Error().Err(err).Str("draft_id", id).Msg("failed to settle generation")
	}

	metrics.Generations.WithLabelValues(string(st.State)).Inc()
	ev := s.Logger.Info()
	if st.State == GenerationFailed {
		ev = s.Logger.Warn().Str("error", st.Error)
	}
	ev.Str("draft_id", id).Str("target", target).Str("state", string(st.State)).Msg("generation settled")
	return st
}

// CancelGeneration discards the in-flight request for target, if any.
func (s *DraftService) CancelGeneration(id, target string) (bool, error) {
	target = normalizeTarget(target)
	if err := s.Drafts.View(id, func(*model.CampaignDraft) error { return nil }); err != nil {
		return false, err
	}
	cancelled := s.Tracker.Cancel(id, target)
	if cancelled {
		s.Logger.Info().Str("draft_id", id).Str("target", target).Msg("generation cancelled")
	}
	return cancelled, nil
}

func (s *DraftService) GenerationStatus(id, target string) (GenerationStatus, bool, error) {
	target = normalizeTarget(target)
	if err := s.Drafts.View(id, func(*model.CampaignDraft) error { return nil }); err != nil {
		return GenerationStatus{}, false, err
	}
	st, ok := s.Tracker.Status(id, target)
	return st, ok, nil
}

// Submit hands the draft to the sender as scheduled, or as sent when
// sendNow is set. Validation issues are logged but do not block; whether
// they should is the sender's policy.
func (s *DraftService) Submit(id string, sendNow bool) (model.DraftSnapshot, error) {
	to := model.StatusScheduled
	if sendNow {
		to = model.StatusSent
	}

	return s.mutate(id, func(d *model.CampaignDraft) error {
		for _, stage := range []model.Stage{model.StageChannels, model.StageAudience, model.StageMessage} {
			if !d.CanAdvance(stage) {
				return appErrors.NewDraftIncomplete(string(stage))
			}
		}
		if d.Status == model.StatusSent || d.Status == to {
			return appErrors.ErrAlreadySubmitted
		}

		if issues := IssuesForDraft(d); HasBlocking(issues) {
			s.Logger.Warn().Str("draft_id", id).Int("issues", len(issues)).Msg("submitting draft with limit violations")
		}

		next := d.Clone()
		if err := next.AdvanceStatus(to); err != nil {
			return err
		}
		ev := model.HandoffEvent{
			Meta: model.HandoffMeta{
				ID:       uuid.NewString(),
				Type:     handoffEventType,
				Producer: s.Producer,
				Time:     time.Now().UTC(),
			},
			Data: next.Snapshot(),
		}
		if err := s.Queue.Publish(queue.HandoffTopic, ev); err != nil {
			return errors.Join(errors.New("handoff publish failed"), err)
		}
		if err := d.AdvanceStatus(to); err != nil {
			return err
		}
		// the handed-off snapshot is final; late generations must not land
		s.Tracker.CancelDraft(id)

		metrics.DraftsSubmitted.WithLabelValues(string(to)).Inc()
		s.Logger.Info().Str("draft_id", id).Str("status", string(to)).Str("event_id", ev.Meta.ID).Msg("draft handed off")
		return nil
	})
}
