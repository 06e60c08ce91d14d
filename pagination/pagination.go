package pagination

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize clamps page and pageSize to valid values and returns the offset
// of the first item.
func Normalize(page, pageSize int) (int, int, int) {
	if page < 1 {
		page = DefaultPage
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	} else if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	offset := (page - 1) * pageSize

	return page, pageSize, offset
}

// HasMore reports whether another page may follow one that returned
// received items.
func HasMore(received, pageSize int) bool {
	return pageSize > 0 && received >= pageSize
}
