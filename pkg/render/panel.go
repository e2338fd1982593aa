package render

import (
	"sync"
)

type Kind string

const (
	KindEmpty   Kind = ""
	KindTable   Kind = "table"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindText    Kind = "text"
)

// View is the content of a panel at one point in time.
type View struct {
	Kind    Kind       `json:"kind"`
	Message string     `json:"message,omitempty"`
	Header  []string   `json:"header,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

// Panel is a display region. Every Show call replaces what was shown before,
// so when several requests finish out of order the last one to complete wins.
// A Panel is safe for concurrent use.
type Panel struct {
	mu      sync.RWMutex
	view    View
	updates int

	notify func(View)
}

func NewPanel() *Panel {
	return &Panel{}
}

// OnUpdate registers a function called with every new view, while the panel
// lock is held. The function must not call back into the panel.
func (p *Panel) OnUpdate(fn func(View)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.notify = fn
}

func (p *Panel) Show(v View) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.view = v
	p.updates++
	if p.notify != nil {
		p.notify(v)
	}
}

func (p *Panel) ShowTable(header []string, rows [][]string) {
	p.Show(View{Kind: KindTable, Header: header, Rows: rows})
}

func (p *Panel) ShowSuccess(message string) {
	p.Show(View{Kind: KindSuccess, Message: message})
}

func (p *Panel) ShowError(message string) {
	p.Show(View{Kind: KindError, Message: message})
}

// ShowText shows a plain message that is neither a success nor an error.
func (p *Panel) ShowText(message string) {
	p.Show(View{Kind: KindText, Message: message})
}

func (p *Panel) View() View {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.view
}

// Updates counts how many times the panel content was replaced.
func (p *Panel) Updates() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.updates
}
