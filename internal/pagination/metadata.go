package pagination

// Meta contains display metadata about the current page.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	FirstRow    int  `json:"first_row"    yaml:"first_row"`
	LastRow     int  `json:"last_row"     yaml:"last_row"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta builds metadata for page with rowCount records out of totalItems.
// FirstRow and LastRow are 1-based and both zero when the page is empty.
func NewMeta(page, pageSize, totalItems, rowCount int) Meta {
	if page < FirstPage {
		page = FirstPage
	}
	totalPages := TotalPages(totalItems, pageSize)

	meta := Meta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: page > FirstPage,
		HasNext:     page < totalPages,
	}
	if rowCount > 0 {
		meta.FirstRow = Offset(page, pageSize) + 1
		meta.LastRow = meta.FirstRow + rowCount - 1
	}
	return meta
}
