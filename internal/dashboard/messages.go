package dashboard

import "github.com/jengzang/indicators-dashboard-go/internal/models"

// Msg is an input to the view controller
type Msg interface {
	msg()
}

// SelectIndicator picks an indicator by catalog key
type SelectIndicator struct {
	Key string
}

// SetField edits one filter field
type SetField struct {
	Name  string
	Value string
}

// Submit asks for the current query to be fetched
type Submit struct{}

// FetchSucceeded delivers the rows of the fetch tagged with Generation
type FetchSucceeded struct {
	Generation uint64
	Rows       []models.ResultRow
}

// FetchFailed delivers the failure of the fetch tagged with Generation
type FetchFailed struct {
	Generation uint64
	Err        error
}

func (SelectIndicator) msg() {}
func (SetField) msg()        {}
func (Submit) msg()          {}
func (FetchSucceeded) msg()  {}
func (FetchFailed) msg()     {}

// FetchRequest is the side effect requested by a Submit
type FetchRequest struct {
	Generation uint64
	Endpoint   string
	Query      string
}
