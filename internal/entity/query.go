package entity

// Operator is a comparison supported by record store filters.
type Operator string

const (
	OpEq     Operator = "="
	OpNotEq  Operator = "<>"
	OpGt     Operator = ">"
	OpGte    Operator = ">="
	OpLt     Operator = "<"
	OpLte    Operator = "<="
	OpIsNull Operator = "IS NULL"
)

// Filter restricts a query to rows whose Column compares to Value with Op.
type Filter struct {
	Column string
	Op     Operator
	Value  any
}

// Eq matches rows where column equals value.
func Eq(column string, value any) Filter { return Filter{Column: column, Op: OpEq, Value: value} }

// NotEq matches rows where column differs from value.
func NotEq(column string, value any) Filter { return Filter{Column: column, Op: OpNotEq, Value: value} }

// Gt matches rows where column is greater than value.
func Gt(column string, value any) Filter { return Filter{Column: column, Op: OpGt, Value: value} }

// Gte matches rows where column is greater than or equal to value.
func Gte(column string, value any) Filter { return Filter{Column: column, Op: OpGte, Value: value} }

// Lt matches rows where column is less than value.
func Lt(column string, value any) Filter { return Filter{Column: column, Op: OpLt, Value: value} }

// Lte matches rows where column is less than or equal to value.
func Lte(column string, value any) Filter { return Filter{Column: column, Op: OpLte, Value: value} }

// IsNull matches rows where column is NULL.
func IsNull(column string) Filter { return Filter{Column: column, Op: OpIsNull} }

// Query selects rows of one entity type. Filters are combined with AND.
type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

// Where builds a query from filters.
func Where(filters ...Filter) Query {
	return Query{Filters: filters}
}

// Order returns a copy of q ordered by column.
func (q Query) Order(column string, descending bool) Query {
	q.OrderBy = column
	q.Descending = descending
	return q
}
