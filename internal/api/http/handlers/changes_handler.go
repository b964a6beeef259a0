package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/events"
)

// ChangesHandler streams record mutations to connected dashboards over
// server-sent events. Each client gets its own Redis subscription scoped
// to the collections its role may observe.
type ChangesHandler struct {
	feed *events.ChangeFeed
}

// NewChangesHandler constructs handler.
func NewChangesHandler(feed *events.ChangeFeed) *ChangesHandler {
	return &ChangesHandler{feed: feed}
}

// visibleCollections returns the collections the member may subscribe to.
// Financial collections are admin-only.
func visibleCollections(staff *domain.StaffMember) []string {
	collections := []string{
		events.CollectionStaff,
		events.CollectionStudents,
		events.CollectionEvents,
		events.CollectionNotices,
		events.CollectionTasks,
	}
	if staff.IsAdmin() {
		collections = append(collections,
			events.CollectionBilling,
			events.CollectionIncomes,
			events.CollectionExpenses,
		)
	}
	return collections
}

// changeVisible applies per-record scoping on top of the collection
// subscription. Owned collections only surface the member's own records.
func changeVisible(staff *domain.StaffMember, change events.RecordChange) bool {
	if staff.IsAdmin() {
		return true
	}
	switch change.Collection {
	case events.CollectionStudents, events.CollectionEvents:
		return change.OwnerHandle == staff.Handle
	default:
		return true
	}
}

// Stream handles GET /changes/stream.
func (h *ChangesHandler) Stream(c *fiber.Ctx) error {
	staff, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	// Snapshot identity before streaming starts; the fiber context is
	// recycled once the handler returns.
	member := *staff
	collections := visibleCollections(&member)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	subscription := h.feed.Subscribe(context.Background(), collections...)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer subscription.Close()

		keepalive := time.NewTicker(25 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case change, ok := <-subscription.C:
				if !ok {
					return
				}
				if !changeVisible(&member, change) {
					continue
				}
				payload, err := json.Marshal(change)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
