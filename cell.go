package cadkit

// ValueType tags the content of a table cell.
type ValueType int

const (
	ValueNone ValueType = iota
	ValueString
	ValueInteger
	ValueDouble
	ValueBool
)

func (t ValueType) String() string {
	switch t {
	case ValueNone:
		return "none"
	case ValueString:
		return "string"
	case ValueInteger:
		return "integer"
	case ValueDouble:
		return "double"
	case ValueBool:
		return "bool"
	default:
		return "unknown"
	}
}

// CellFlags is the cell value bit set.
type CellFlags uint32

const (
	// CellFlagEmpty is set while the cell holds no value.
	CellFlagEmpty CellFlags = 1 << 0
)

// CellValue is a leaf data holder for table cells: a typed value, its
// type tag, a flag set and optional formatting. It takes no part in
// the object graph lifecycle.
type CellValue struct {
	value     interface{}
	valueType ValueType
	flags     CellFlags

	Format        string
	FormattedText string
}

func NewCellValue() *CellValue {
	return &CellValue{flags: CellFlagEmpty}
}

func (c *CellValue) Value() interface{} { return c.value }

func (c *CellValue) ValueType() ValueType { return c.valueType }

func (c *CellValue) Flags() CellFlags { return c.flags }

func (c *CellValue) IsEmpty() bool {
	return c.flags&CellFlagEmpty != 0
}

// SetValue stores v, derives the type tag and clears the empty flag.
// Unrecognized types are stored with the none tag.
func (c *CellValue) SetValue(v interface{}) {
	c.value = v
	c.flags &^= CellFlagEmpty

	switch v.(type) {
	case string:
		c.valueType = ValueString
	case int, int32, int64:
		c.valueType = ValueInteger
	case float32, float64:
		c.valueType = ValueDouble
	case bool:
		c.valueType = ValueBool
	default:
		c.valueType = ValueNone
	}
}

// Clear resets the cell to its empty state. Formatting strings are
// kept.
func (c *CellValue) Clear() {
	c.value = nil
	c.valueType = ValueNone
	c.flags |= CellFlagEmpty
}
