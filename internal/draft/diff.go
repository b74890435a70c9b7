package draft

import "itemsync/internal/service"

// Fields are the locally editable parts of an item.
type Fields struct {
	Memo     string
	ImageURL string
}

// FieldsOf extracts the editable fields of an item.
func FieldsOf(item service.Item) Fields {
	return Fields{Memo: item.Memo, ImageURL: item.ImageURL}
}

// Diff returns a patch holding exactly the fields of draft that differ from
// baseline. Each field is compared independently.
func Diff(baseline service.Item, draft Fields) service.Patch {
	var patch service.Patch
	if draft.Memo != baseline.Memo {
		patch.Memo = service.String(draft.Memo)
	}
	if draft.ImageURL != baseline.ImageURL {
		patch.ImageURL = service.String(draft.ImageURL)
	}
	return patch
}
