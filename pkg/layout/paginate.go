package layout

// PageCount returns ceil(n/perPage), or 0 when there is nothing to place.
func PageCount(n, perPage int) int {
	if n <= 0 || perPage <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// Paginate splits items into consecutive pages of at most perPage elements,
// preserving order. The returned pages share storage with items.
func Paginate[T any](items []T, perPage int) [][]T {
	n := PageCount(len(items), perPage)
	if n == 0 {
		return nil
	}
	pages := make([][]T, 0, n)
	for start := 0; start < len(items); start += perPage {
		end := min(start+perPage, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}

// CellFor maps a page-local index to its cell in row-major order.
func CellFor(i, cols int) (row, col int) {
	return i / cols, i % cols
}
