package form

// Column is a row of the table creation form.
type Column struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key"`
}

// Field is a column and value pair, used by insert and update forms.
type Field struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Condition is a where condition row.
type Condition struct {
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Choice is a column checkbox of the select form.
type Choice struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

type CreateDatabase struct {
	DBName string `json:"db_name"`
}

type CreateTable struct {
	DBName    string       `json:"db_name"`
	TableName string       `json:"table_name"`
	Columns   List[Column] `json:"columns"`
}

// AddColumn appends an empty column row.
func (f *CreateTable) AddColumn() string {
	return f.Columns.Add(Column{Type: "INT"})
}

func (f *CreateTable) RemoveColumn(id string) bool {
	return f.Columns.Remove(id)
}

type Query struct {
	Query string `json:"query"`
}

type DropDatabase struct {
	DBName  string `json:"db_name"`
	Confirm bool   `json:"confirm"`
}

type DropTable struct {
	DBName    string `json:"db_name"`
	TableName string `json:"table_name"`
	Confirm   bool   `json:"confirm"`
}

type Insert struct {
	DBName    string      `json:"db_name"`
	TableName string      `json:"table_name"`
	Fields    List[Field] `json:"fields"`
}

func (f *Insert) AddField() string {
	return f.Fields.Add(Field{})
}

func (f *Insert) RemoveField(id string) bool {
	return f.Fields.Remove(id)
}

type Select struct {
	DBName     string          `json:"db_name"`
	TableName  string          `json:"table_name"`
	SelectAll  bool            `json:"select_all"`
	Columns    []Choice        `json:"columns"`
	Conditions List[Condition] `json:"conditions"`
}

func (f *Select) AddCondition() string {
	return f.Conditions.Add(Condition{Operator: "="})
}

func (f *Select) RemoveCondition(id string) bool {
	return f.Conditions.Remove(id)
}

type Update struct {
	DBName     string          `json:"db_name"`
	TableName  string          `json:"table_name"`
	Fields     List[Field]     `json:"fields"`
	Conditions List[Condition] `json:"conditions"`
}

func (f *Update) AddField() string {
	return f.Fields.Add(Field{})
}

func (f *Update) RemoveField(id string) bool {
	return f.Fields.Remove(id)
}

func (f *Update) AddCondition() string {
	return f.Conditions.Add(Condition{Operator: "="})
}

func (f *Update) RemoveCondition(id string) bool {
	return f.Conditions.Remove(id)
}

type DeleteColumn struct {
	DBName     string `json:"db_name"`
	TableName  string `json:"table_name"`
	ColumnName string `json:"column_name"`
}

type Search struct {
	DBName    string `json:"db_name"`
	TableName string `json:"table_name"`
	Column    string `json:"column"`
	Value     string `json:"value"`
}

type UpdateRecords struct {
	DBName    string `json:"db_name"`
	TableName string `json:"table_name"`
	Column    string `json:"column"`
	Value     string `json:"value"`
	Where     string `json:"where"`
}

type DeleteRecords struct {
	DBName    string `json:"db_name"`
	TableName string `json:"table_name"`
	Where     string `json:"where"`
}
