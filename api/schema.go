package api

// Location is one entry of the startup payload.
// A location carrying a "children" key (even an empty array) is a group;
// one without it is a single place.
type Location struct {
	// ID is unique across the whole payload.
	ID int64 `json:"id"`
	// Name is the display label.
	Name string `json:"name"`
	// ParentID points back at the enclosing group. Absent for top-level entries.
	ParentID *int64 `json:"parent_id,omitempty"`
	// Children of a group. nil means "not a group".
	Children []Location `json:"children,omitempty"`
}

// IsGroup reports whether the payload declared a children list.
func (l Location) IsGroup() bool {
	return l.Children != nil
}

// NodeView is the rendering form of a node, shared by every front end.
type NodeView struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	ParentID *int64     `json:"parent_id,omitempty"`
	Group    bool       `json:"group"`
	Children []NodeView `json:"children,omitempty"`
}

// MarkerView is a placed map marker.
type MarkerView struct {
	NodeID int64   `json:"node_id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// MapView carries the initial viewport of the map.
type MapView struct {
	Center  [2]float64 `json:"center"`
	Zoom    int        `json:"zoom"`
	TileURL string     `json:"tile_url"`
}

// State is a full snapshot of the widget.
type State struct {
	Available  []NodeView   `json:"available"`
	Active     []NodeView   `json:"active"`
	Markers    []MarkerView `json:"markers"`
	PanelShown bool         `json:"panel_shown"`
	PanelLabel string       `json:"panel_label"`
	Map        MapView      `json:"map"`
	LoadError  string       `json:"load_error,omitempty"`
}

// MoveRequest asks to move a node out of a collection ("available" or "active").
type MoveRequest struct {
	From string `json:"from"`
	ID   int64  `json:"id"`
}

// MoveResult reports which branch of the move ran.
type MoveResult struct {
	Outcome  string  `json:"outcome"`
	ID       int64   `json:"id"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Placed   []int64 `json:"placed,omitempty"`
	Renested []int64 `json:"renested,omitempty"`
}

// MoveResponse is the answer to a move: the result and the state after it.
type MoveResponse struct {
	Result MoveResult `json:"result"`
	State  State      `json:"state"`
}
