package dashboard

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownElement is returned when an id was never declared on the page
var ErrUnknownElement = errors.New("unknown page element")

// Status classifies a response area for styling
type Status string

const (
	StatusInfo    Status = "info"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// RegionKind separates probe response areas from snapshot status regions
type RegionKind string

const (
	KindResponse RegionKind = "response"
	KindStatus   RegionKind = "status"
)

// Control is a button on the page
type Control struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Disabled bool     `json:"disabled"`
	Classes  []string `json:"classes"`
}

// HasClass reports whether name is among the control's classes
func (c *Control) HasClass(name string) bool {
	for _, cl := range c.Classes {
		if cl == name {
			return true
		}
	}
	return false
}

// AddClass adds name once
func (c *Control) AddClass(name string) {
	if !c.HasClass(name) {
		c.Classes = append(c.Classes, name)
	}
}

// RemoveClass drops every occurrence of name
func (c *Control) RemoveClass(name string) {
	kept := c.Classes[:0]
	for _, cl := range c.Classes {
		if cl != name {
			kept = append(kept, cl)
		}
	}
	c.Classes = kept
}

func (c Control) clone() Control {
	classes := make([]string, len(c.Classes))
	copy(classes, c.Classes)
	c.Classes = classes
	return c
}

// Region is a named display area. Response areas hold text and a status;
// status regions hold an HTML fragment.
type Region struct {
	ID      string     `json:"id"`
	Kind    RegionKind `json:"kind"`
	Content string     `json:"content"`
	HTML    bool       `json:"html"`
	Status  Status     `json:"status,omitempty"`
}

// Class is the CSS class string the browser applies to the region
func (r Region) Class() string {
	if r.Kind == KindResponse {
		return "response-area " + string(r.Status)
	}
	return "status-region"
}

// Event describes one mutation; exactly one of Control and Region is set
type Event struct {
	Type    string   `json:"type"`
	Control *Control `json:"control,omitempty"`
	Region  *Region  `json:"region,omitempty"`
}

const (
	EventControl = "control"
	EventRegion  = "region"
)

// Observer is notified after every page mutation
type Observer func(Event)

// State is a full copy of the page
type State struct {
	Controls []Control `json:"controls"`
	Regions  []Region  `json:"regions"`
}

// Page is the display tree. Elements are declared up front; operations
// only change their content, never add or remove them. Each mutation is
// applied atomically and observers see mutations in the order they were
// applied. Observers must not mutate the page.
type Page struct {
	// writeMu serializes mutation plus notification
	writeMu      sync.Mutex
	mu           sync.RWMutex
	controls     map[string]*Control
	regions      map[string]*Region
	controlOrder []string
	regionOrder  []string

	obsMu     sync.RWMutex
	observers map[int]Observer
	nextObs   int
}

// NewPage returns an empty page
func NewPage() *Page {
	return &Page{
		controls:  make(map[string]*Control),
		regions:   make(map[string]*Region),
		observers: make(map[int]Observer),
	}
}

// DeclareControl adds a button. Declaring an id twice is a programming error.
func (p *Page) DeclareControl(id, label string, classes ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.controls[id]; ok {
		panic(fmt.Sprintf("control %q declared twice", id))
	}
	p.controls[id] = &Control{ID: id, Label: label, Classes: append(make([]string, 0, len(classes)), classes...)}
	p.controlOrder = append(p.controlOrder, id)
}

// DeclareRegion adds a display region. Response areas start as empty info.
func (p *Page) DeclareRegion(id string, kind RegionKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.regions[id]; ok {
		panic(fmt.Sprintf("region %q declared twice", id))
	}
	r := &Region{ID: id, Kind: kind}
	if kind == KindResponse {
		r.Status = StatusInfo
	}
	p.regions[id] = r
	p.regionOrder = append(p.regionOrder, id)
}

// Control returns a copy of the control with the given id
func (p *Page) Control(id string) (Control, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.controls[id]
	if !ok {
		return Control{}, false
	}
	return c.clone(), true
}

// Region returns a copy of the region with the given id
func (p *Page) Region(id string) (Region, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r, ok := p.regions[id]
	if !ok {
		return Region{}, false
	}
	return *r, true
}

// State copies every element in declaration order
func (p *Page) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := State{
		Controls: make([]Control, 0, len(p.controlOrder)),
		Regions:  make([]Region, 0, len(p.regionOrder)),
	}
	for _, id := range p.controlOrder {
		s.Controls = append(s.Controls, p.controls[id].clone())
	}
	for _, id := range p.regionOrder {
		s.Regions = append(s.Regions, *p.regions[id])
	}
	return s
}

// UpdateControl applies fn to the control under the page lock
func (p *Page) UpdateControl(id string, fn func(*Control)) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	c, ok := p.controls[id]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("control %q: %w", id, ErrUnknownElement)
	}
	fn(c)
	updated := c.clone()
	p.mu.Unlock()

	p.notify(Event{Type: EventControl, Control: &updated})
	return nil
}

// SetRegion replaces a region's content wholesale
func (p *Page) SetRegion(id, content string, html bool, status Status) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	r, ok := p.regions[id]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("region %q: %w", id, ErrUnknownElement)
	}
	r.Content = content
	r.HTML = html
	r.Status = status
	updated := *r
	p.mu.Unlock()

	p.notify(Event{Type: EventRegion, Region: &updated})
	return nil
}

// Subscribe registers obs and returns a function that removes it
func (p *Page) Subscribe(obs Observer) func() {
	p.obsMu.Lock()
	id := p.nextObs
	p.nextObs++
	p.observers[id] = obs
	p.obsMu.Unlock()

	return func() {
		p.obsMu.Lock()
		delete(p.observers, id)
		p.obsMu.Unlock()
	}
}

func (p *Page) notify(ev Event) {
	p.obsMu.RLock()
	observers := make([]Observer, 0, len(p.observers))
	for _, obs := range p.observers {
		observers = append(observers, obs)
	}
	p.obsMu.RUnlock()

	for _, obs := range observers {
		obs(ev)
	}
}
