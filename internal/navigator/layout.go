package navigator

// rowKind classifies a rendered menu row
type rowKind int

const (
	rowBack rowKind = iota
	rowExit
	rowContent
	rowControl
	rowPlugin
)

// layout describes how a menu is assembled:
//
//	[ <- back ]      only below the root
//	[ exit ]
//	content rows     fields or list elements
//	control rows     list delete/add
//	plugin row       optional
//
// Content indices and rendered rows are converted only through row and
// classify, so the number of leading control rows is never hard-coded.
type layout struct {
	back     bool
	content  int
	controls int
	plugin   bool
}

// lead is the number of control rows rendered before the content
func (l layout) lead() int {
	if l.back {
		return 2
	}
	return 1
}

// rows is the total number of rendered rows
func (l layout) rows() int {
	n := l.lead() + l.content + l.controls
	if l.plugin {
		n++
	}
	return n
}

// row converts a content index into a rendered row
func (l layout) row(content int) int {
	return l.lead() + content
}

// classify converts a rendered row into its kind and the index within that
// kind (content index, control index).
func (l layout) classify(row int) (rowKind, int) {
	switch {
	case l.back && row == 0:
		return rowBack, 0
	case row == l.lead()-1:
		return rowExit, 0
	case row < l.lead()+l.content:
		return rowContent, row - l.lead()
	case row < l.lead()+l.content+l.controls:
		return rowControl, row - l.lead() - l.content
	default:
		return rowPlugin, 0
	}
}

// defaultRow picks the row to highlight. restore is a content index or
// negative for the first row.
func (l layout) defaultRow(restore int) int {
	if restore < 0 {
		return 0
	}
	return min(l.row(restore), l.rows()-1)
}
