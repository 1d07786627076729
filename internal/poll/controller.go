package poll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Messenger is the messaging surface the controller drives. Implementations
// live at the platform edge; the controller never touches the connection
// directly.
type Messenger interface {
	// Post sends text to the channel and returns a handle to the message.
	Post(ctx context.Context, channel ChannelID, text string) (MessageRef, error)
	// React attaches the bot's own reaction to the message.
	React(ctx context.Context, msg MessageRef, e Emoji) error
	// Fetch reads back the message's current aggregate reaction state.
	Fetch(ctx context.Context, msg MessageRef) ([]Reaction, error)
	// Forget releases any tracking state kept for the message.
	Forget(msg MessageRef)
}

// Clock abstracts wall-clock time so deadlines are testable.
type Clock interface {
	Now() time.Time
	// Sleep blocks until d has elapsed or ctx is done. A non-positive d
	// returns immediately.
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the real Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AuditLog receives poll lifecycle events. Fire and forget: the controller
// never consumes a result from it.
type AuditLog interface {
	Info(actor Originator, channel ChannelID, text string)
	Warning(actor Originator, channel ChannelID, text string)
}

// History persists poll lifecycle records. Failures are logged by the
// controller, never fatal to the poll.
type History interface {
	RecordOpened(inst *Instance) error
	RecordOutcome(inst *Instance, entries []TallyEntry) error
}

// Controller owns the full lifecycle of the polls it creates: posting,
// seeding the reaction legend, waiting out the deadline, tallying and
// announcing results. Instances share no state, so any number of polls can
// be open at once, each waiting in its own goroutine.
type Controller struct {
	messenger Messenger
	clock     Clock
	audit     AuditLog
	history   History
	logger    *slog.Logger

	mu   sync.Mutex
	open map[uuid.UUID]*Instance
}

// NewController wires the controller to its collaborators. history may be
// nil if poll history should not be persisted.
func NewController(messenger Messenger, clock Clock, audit AuditLog, history History, logger *slog.Logger) *Controller {
	return &Controller{
		messenger: messenger,
		clock:     clock,
		audit:     audit,
		history:   history,
		logger:    logger,
		open:      make(map[uuid.UUID]*Instance),
	}
}

// Create builds a Pending instance from a validated definition. Nothing is
// posted yet.
func (c *Controller) Create(def *Definition, by Originator, channel ChannelID) *Instance {
	return &Instance{
		ID:         uuid.New(),
		Definition: def,
		Channel:    channel,
		Originator: by,
		State:      StatePending,
		CreatedAt:  c.clock.Now(),
	}
}

// Open posts the poll announcement and attaches one legend reaction per
// option, in definition order. A posting failure is returned to the caller
// and leaves no observable instance behind. A failed legend reaction is
// logged but does not abort the poll.
func (c *Controller) Open(ctx context.Context, inst *Instance) error {
	text, err := RenderAnnouncement(inst.Definition)
	if err != nil {
		return fmt.Errorf("render announcement: %w", err)
	}

	msg, err := c.messenger.Post(ctx, inst.Channel, text)
	if err != nil {
		return fmt.Errorf("post poll message: %w", err)
	}
	inst.Message = msg

	for _, opt := range inst.Definition.Options {
		if err := c.messenger.React(ctx, msg, opt.Emoji); err != nil {
			c.logger.Warn("failed to attach legend reaction",
				"poll_id", inst.ID,
				"emoji", string(opt.Emoji),
				"error", err,
			)
		}
	}

	inst.State = StateOpen
	c.track(inst)

	c.audit.Info(inst.Originator, inst.Channel, "Vote started!")
	c.logger.Info("poll opened",
		"poll_id", inst.ID,
		"chat_id", int64(inst.Channel),
		"options", len(inst.Definition.Options),
		"deadline", inst.Definition.Deadline,
	)

	if c.history != nil {
		if err := c.history.RecordOpened(inst); err != nil {
			c.logger.Warn("failed to record poll", "poll_id", inst.ID, "error", err)
		}
	}
	return nil
}

// AwaitClose waits until the instance's deadline, reads back the final
// reaction state and announces the results. A deadline already in the past
// tallies immediately. If the poll message cannot be read back the instance
// becomes Failed: a warning is logged, nothing is announced and nothing is
// retried. The returned error reports unexpected internal failures only;
// the Failed path itself returns nil.
func (c *Controller) AwaitClose(ctx context.Context, inst *Instance) error {
	defer c.untrack(inst)
	defer c.messenger.Forget(inst.Message)

	if err := c.clock.Sleep(ctx, inst.Definition.Deadline.Sub(c.clock.Now())); err != nil {
		// Shutdown while waiting: the poll is abandoned.
		return err
	}

	reactions, err := c.messenger.Fetch(ctx, inst.Message)
	if err != nil {
		c.setState(inst, StateFailed)
		c.audit.Warning(inst.Originator, inst.Channel, "Vote ended but the message was not found!")
		c.logger.Warn("poll message gone at close",
			"poll_id", inst.ID,
			"chat_id", int64(inst.Channel),
			"error", err,
		)
		c.recordOutcome(inst, nil)
		return nil
	}

	entries := Tally(inst.Definition, reactions)
	c.audit.Info(inst.Originator, inst.Channel, AuditSummary(entries))

	ranked := Rank(entries)
	text, err := RenderResults(ranked)
	if err != nil {
		return fmt.Errorf("render results: %w", err)
	}
	if _, err := c.messenger.Post(ctx, inst.Channel, text); err != nil {
		c.setState(inst, StateFailed)
		c.recordOutcome(inst, ranked)
		return fmt.Errorf("post results: %w", err)
	}

	c.setState(inst, StateClosed)
	c.logger.Info("poll closed", "poll_id", inst.ID, "chat_id", int64(inst.Channel))
	c.recordOutcome(inst, ranked)
	return nil
}

func (c *Controller) recordOutcome(inst *Instance, entries []TallyEntry) {
	if c.history == nil {
		return
	}
	if err := c.history.RecordOutcome(inst, entries); err != nil {
		c.logger.Warn("failed to record poll outcome", "poll_id", inst.ID, "error", err)
	}
}

// setState guards the transition with the registry mutex: the instance may
// still be visible to Snapshot while it is closing.
func (c *Controller) setState(inst *Instance, s State) {
	c.mu.Lock()
	inst.State = s
	c.mu.Unlock()
}

func (c *Controller) track(inst *Instance) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open[inst.ID] = inst
}

func (c *Controller) untrack(inst *Instance) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.open, inst.ID)
}

// Snapshot returns a view of the currently open polls, ordered by deadline.
func (c *Controller) Snapshot() []Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snaps := make([]Snapshot, 0, len(c.open))
	for _, inst := range c.open {
		snaps = append(snaps, inst.snapshot())
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Deadline.Before(snaps[j].Deadline)
	})
	return snaps
}
