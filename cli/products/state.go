package products

import (
	"context"

	"github.com/compozy/products/cli/api"
)

// Ticket identifies one issued request. Only the newest ticket of an action
// is current; results carrying an older ticket are dropped.
type Ticket struct {
	Action api.Action
	Gen    uint64
}

// Notification is the single message slot shared by every action
type Notification struct {
	Message string
	Visible bool
	Failed  bool
	Seq     uint64
}

// Effect tells the caller what a reducer changed beyond state
type Effect struct {
	// Applied is false when the result was stale and ignored
	Applied bool
	// Notified is true when a notification was shown and needs an expiry timer
	Notified bool
	// Relist asks for the product list to be fetched again
	Relist bool
}

type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

// State is the transient state of the products view
type State struct {
	Products      []api.Product
	Detail        *api.Product
	Types         []string
	Draft         api.NewProduct
	DeleteID      string
	SearchID      string
	Notification  Notification
	AddDialogOpen bool

	gens    map[api.Action]uint64
	pending map[api.Action]inflight
	seq     uint64
}

// NewState returns the state a freshly mounted view starts with
func NewState() *State {
	return &State{
		Products: []api.Product{},
		Types:    []string{},
		gens:     make(map[api.Action]uint64),
		pending:  make(map[api.Action]inflight),
	}
}

// Begin issues a ticket for action, canceling any in-flight request of the
// same action. The returned context is canceled when the request is superseded.
func (s *State) Begin(parent context.Context, action api.Action) (context.Context, Ticket) {
	if prev, ok := s.pending[action]; ok {
		prev.cancel()
	}
	s.gens[action]++
	ctx, cancel := context.WithCancel(parent)
	ticket := Ticket{Action: action, Gen: s.gens[action]}
	s.pending[action] = inflight{gen: ticket.Gen, cancel: cancel}
	return ctx, ticket
}

// IsCurrent reports whether t is the newest ticket issued for its action
func (s *State) IsCurrent(t Ticket) bool {
	return s.gens[t.Action] == t.Gen
}

// Pending reports whether a request of action is in flight
func (s *State) Pending(action api.Action) bool {
	_, ok := s.pending[action]
	return ok
}

// Busy reports whether any request is in flight
func (s *State) Busy() bool {
	return len(s.pending) > 0
}

// CancelAll cancels every in-flight request; their results become stale
func (s *State) CancelAll() {
	for action, req := range s.pending {
		req.cancel()
		s.gens[action]++
		delete(s.pending, action)
	}
}

// settle releases t and reports whether its result may be applied
func (s *State) settle(t Ticket) bool {
	if !s.IsCurrent(t) {
		return false
	}
	if req, ok := s.pending[t.Action]; ok && req.gen == t.Gen {
		req.cancel()
		delete(s.pending, t.Action)
	}
	return true
}

// Notify replaces the notification and returns its sequence number
func (s *State) Notify(message string, failed bool) uint64 {
	s.seq++
	s.Notification = Notification{Message: message, Visible: true, Failed: failed, Seq: s.seq}
	return s.seq
}

// ExpireNotification hides the notification if seq is still the one shown
func (s *State) ExpireNotification(seq uint64) bool {
	if !s.Notification.Visible || s.Notification.Seq != seq {
		return false
	}
	s.Notification.Visible = false
	return true
}

// CloseNotification hides the notification
func (s *State) CloseNotification() {
	s.Notification.Visible = false
}

// OpenAddDialog shows the add dialog
func (s *State) OpenAddDialog() {
	s.AddDialogOpen = true
}

// CloseAddDialog hides the add dialog, keeping the draft
func (s *State) CloseAddDialog() {
	s.AddDialogOpen = false
}

// SetDraft records the values typed in the add dialog
func (s *State) SetDraft(draft api.NewProduct) {
	s.Draft = draft
}

// SetSearchID records the id typed in the search field
func (s *State) SetSearchID(id string) {
	s.SearchID = id
}

// SetDeleteID records the id typed in the delete field
func (s *State) SetDeleteID(id string) {
	s.DeleteID = id
}

func (s *State) fail(action api.Action) Effect {
	s.Notify(action.FailureMessage(), true)
	return Effect{Applied: true, Notified: true}
}

// ApplyListResult replaces the product list on success
func (s *State) ApplyListResult(t Ticket, products []api.Product, err error) Effect {
	if !s.settle(t) {
		return Effect{}
	}
	if err != nil {
		return s.fail(api.ActionList)
	}
	if products == nil {
		products = []api.Product{}
	}
	s.Products = products
	return Effect{Applied: true}
}

// ApplyGetResult replaces the product detail on success
func (s *State) ApplyGetResult(t Ticket, product *api.Product, err error) Effect {
	if !s.settle(t) {
		return Effect{}
	}
	if err != nil || product == nil {
		return s.fail(api.ActionGet)
	}
	s.Detail = product
	return Effect{Applied: true}
}

// ApplyTypesResult replaces the product type list on success
func (s *State) ApplyTypesResult(t Ticket, types []string, err error) Effect {
	if !s.settle(t) {
		return Effect{}
	}
	if err != nil {
		return s.fail(api.ActionTypes)
	}
	if types == nil {
		types = []string{}
	}
	s.Types = types
	return Effect{Applied: true}
}

// ApplyAddResult clears the draft and closes the dialog on success
func (s *State) ApplyAddResult(t Ticket, err error) Effect {
	if !s.settle(t) {
		return Effect{}
	}
	if err != nil {
		return s.fail(api.ActionAdd)
	}
	s.Draft = api.NewProduct{}
	s.AddDialogOpen = false
	s.Notify(api.ActionAdd.SuccessMessage(), false)
	return Effect{Applied: true, Notified: true, Relist: true}
}

// ApplyDeleteResult clears the delete field on success
func (s *State) ApplyDeleteResult(t Ticket, err error) Effect {
	if !s.settle(t) {
		return Effect{}
	}
	if err != nil {
		return s.fail(api.ActionDelete)
	}
	s.DeleteID = ""
	s.Notify(api.ActionDelete.SuccessMessage(), false)
	return Effect{Applied: true, Notified: true, Relist: true}
}
