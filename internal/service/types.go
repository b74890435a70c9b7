// Package service defines the backend-agnostic interface for item operations.
package service

// Item is a snapshot of one entry in the remote collection.
// Absent memo and imageUrl fields decode as empty strings.
type Item struct {
	ID          int64  `json:"id"`
	TenantID    string `json:"tenantId"`
	Name        string `json:"name"`
	Memo        string `json:"memo,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	IsCompleted bool   `json:"isCompleted"`
}

// Patch is a partial update. Nil fields are omitted from the request body
// and left untouched server-side.
type Patch struct {
	Memo        *string `json:"memo,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Memo == nil && p.ImageURL == nil && p.IsCompleted == nil
}

// Fields returns the wire names of the fields set on the patch, in a fixed order.
func (p Patch) Fields() []string {
	var fields []string
	if p.Memo != nil {
		fields = append(fields, "memo")
	}
	if p.ImageURL != nil {
		fields = append(fields, "imageUrl")
	}
	if p.IsCompleted != nil {
		fields = append(fields, "isCompleted")
	}
	return fields
}

// Apply returns a copy of item with the patch applied.
func (p Patch) Apply(item Item) Item {
	if p.Memo != nil {
		item.Memo = *p.Memo
	}
	if p.ImageURL != nil {
		item.ImageURL = *p.ImageURL
	}
	if p.IsCompleted != nil {
		item.IsCompleted = *p.IsCompleted
	}
	return item
}

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building patches.
func Bool(b bool) *bool { return &b }
