package appstate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/iconcile/expense-backend/pkg/client"
)

var (
	ErrVendorRequired    = errors.New("a vendor name is required")
	ErrAmountNotPositive = errors.New("the amount must be positive")
	ErrDateRequired      = errors.New("a date is required")
	ErrNoFileSelected    = errors.New("no file is selected")
	ErrDeleteDeclined    = errors.New("the deletion was declined")
)

// API is the backend contract the controller depends on. It is
// implemented by client.Client.
type API interface {
	Expenses(ctx context.Context) ([]client.Expense, error)
	Add(ctx context.Context, expense client.ExpenseRequest) (client.Expense, error)
	Delete(ctx context.Context, id string) error
	UploadCSV(ctx context.Context, fileName string, file io.Reader) (client.ImportResult, error)
	Anomalies(ctx context.Context) ([]client.Expense, error)
	Dashboard(ctx context.Context, year int, month int) (client.DashboardData, error)
}

// Controller owns the application state. All methods are safe for
// concurrent use.
type Controller struct {
	mu  sync.Mutex
	api API

	// generation invalidates in-flight reloads. A response is discarded
	// when the generation changed while it was in flight, so a reload
	// for a previously selected month can never overwrite newer data.
	generation uint64

	state State
}

// New returns a controller with the month selection set to the current
// date. Call Refresh to load the initial data.
func New(api API) *Controller {
	now := time.Now()

	return &Controller{
		api: api,
		state: State{
			ActiveTab: TabExpenses,
			Expenses:  []client.Expense{},
			Year:      now.Year(),
			Month:     int(now.Month()),
			Draft:     NewDraft(),
		},
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// SetTab switches the active tab.
func (c *Controller) SetTab(tab Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ActiveTab = tab
}

// SetMonth changes the month selection and reloads. Responses of
// reloads that were in flight for the previous selection are discarded.
func (c *Controller) SetMonth(ctx context.Context, year int, month int) {
	c.mu.Lock()
	c.generation++
	c.state.Year = year
	c.state.Month = month
	c.mu.Unlock()

	c.Refresh(ctx)
}

// Refresh reloads the expense list and the dashboard. The two requests
// are independent, a failure of one does not prevent the other from
// updating. Already loaded data is kept on failure.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	gen := c.generation
	year, month := c.state.Year, c.state.Month
	c.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()

		expenses, err := c.api.Expenses(ctx)
		c.apply(gen, func(s *State) {
			if err != nil {
				s.Err = fmt.Errorf("failed to load expenses: %w", err)
				return
			}
			s.Expenses = expenses
		})
	}()

	go func() {
		defer wg.Done()

		dashboard, err := c.api.Dashboard(ctx, year, month)
		c.apply(gen, func(s *State) {
			if err != nil {
				s.Err = fmt.Errorf("failed to load dashboard: %w", err)
				return
			}
			s.Dashboard = dashboard
		})
	}()

	wg.Wait()
}

// apply runs the update unless the state moved on while the response
// was in flight.
func (c *Controller) apply(gen uint64, update func(*State)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return false
	}

	update(&c.state)
	return true
}

// SetDraft replaces the expense creation draft.
func (c *Controller) SetDraft(draft Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Draft = draft
}

// AddExpense submits the current draft. On success the draft is
// cleared, a confirmation message with the assigned category is set and
// both lists are reloaded. On failure the draft is preserved so that
// the user can retry without re-entering data.
func (c *Controller) AddExpense(ctx context.Context) (client.Expense, error) {
	c.mu.Lock()
	draft := c.state.Draft
	c.mu.Unlock()

	if err := draft.validate(); err != nil {
		c.setError(err)
		return client.Expense{}, err
	}

	created, err := c.api.Add(ctx, draft.request())
	if err != nil {
		err = fmt.Errorf("failed to add expense: %w", err)
		c.setError(err)
		return client.Expense{}, err
	}

	message := fmt.Sprintf("Added expense for %s in category %s", created.VendorName, created.Category)
	if created.Anomaly {
		message += ", flagged as an anomaly"
	}

	c.mu.Lock()
	c.state.Draft = NewDraft()
	c.state.Message = message
	c.state.Err = nil
	c.mu.Unlock()

	c.Refresh(ctx)
	return created, nil
}

// DeleteExpense deletes an expense after the confirm callback approved
// it. Both lists are reloaded afterwards so the aggregates stay
// consistent.
func (c *Controller) DeleteExpense(ctx context.Context, id string, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return ErrDeleteDeclined
	}

	if err := c.api.Delete(ctx, id); err != nil {
		err = fmt.Errorf("failed to delete expense: %w", err)
		c.setError(err)
		return err
	}

	c.mu.Lock()
	c.state.Message = "Expense deleted"
	c.state.Err = nil
	c.mu.Unlock()

	c.Refresh(ctx)
	return nil
}

// SelectFile sets the file selection for the CSV upload.
func (c *Controller) SelectFile(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.FileName = name
}

// Upload imports the selected file. The selection is cleared on success
// only, a failed upload keeps it so that the same file can be retried.
func (c *Controller) Upload(ctx context.Context, file io.Reader) (client.ImportResult, error) {
	c.mu.Lock()
	name := c.state.FileName
	c.mu.Unlock()

	if name == "" {
		c.setError(ErrNoFileSelected)
		return client.ImportResult{}, ErrNoFileSelected
	}

	result, err := c.api.UploadCSV(ctx, name, file)
	if err != nil {
		err = fmt.Errorf("failed to upload file: %w", err)
		c.setError(err)
		return client.ImportResult{}, err
	}

	c.mu.Lock()
	c.state.FileName = ""
	c.state.Message = fmt.Sprintf("Imported %d expenses", result.Count)
	c.state.Err = nil
	c.mu.Unlock()

	c.Refresh(ctx)
	return result, nil
}

func (c *Controller) setError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Err = err
}
