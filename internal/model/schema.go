package model

// Canonical field names produced by the normalizer.
const (
	FieldCreatedAt     = "created_at"
	FieldResolvedHours = "resolved_hours"
	FieldAnalyst       = "analyst"
	FieldCategory      = "category"
	FieldID            = "id"
	FieldSLAStatus     = "sla_status"
)

// DefaultSLAMet is the status value that counts toward SLA compliance.
// Every known export version spells it this way.
const DefaultSLAMet = "ATENDEU O SLA"

// Field describes one canonical column and the source header spellings that
// map to it across export versions.
type Field struct {
	Canonical string
	Aliases   []string // consulted in order; first header match wins
	Required  bool     // the whole file is rejected when no alias resolves
}

// Schema is the declarative alias table consulted once per file.
type Schema struct {
	Fields      []Field
	SLAMetValue string
}

// DefaultSchema returns the alias table covering all known export versions.
// created_at and resolved_hours are structural requirements; the remaining
// fields degrade per row when their column is absent.
func DefaultSchema() *Schema {
	return &Schema{
		SLAMetValue: DefaultSLAMet,
		Fields: []Field{
			{Canonical: FieldCreatedAt, Aliases: []string{"Data criação", "Data/Hora criação"}, Required: true},
			{Canonical: FieldResolvedHours, Aliases: []string{"Tempo Resolvido (Horas)", "Tempo Resolvido (h)"}, Required: true},
			{Canonical: FieldAnalyst, Aliases: []string{"Analista Responsável", "Analista"}},
			{Canonical: FieldCategory, Aliases: []string{"Categoria 1", "Categoria"}},
			{Canonical: FieldID, Aliases: []string{"PK Dataset Chamados", "ID Chamado"}},
			{Canonical: FieldSLAStatus, Aliases: []string{"Flag Atendeu SLA", "Status SLA"}},
		},
	}
}

// FieldByCanonical returns the Field for the given canonical name, or ok=false.
func (s *Schema) FieldByCanonical(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Canonical == name {
			return f, true
		}
	}
	return Field{}, false
}

// ExtendAliases appends extra accepted header spellings to a canonical field.
// Reports ok=false when the canonical name is unknown.
func (s *Schema) ExtendAliases(canonical string, aliases []string) bool {
	for i := range s.Fields {
		if s.Fields[i].Canonical == canonical {
			s.Fields[i].Aliases = append(s.Fields[i].Aliases, aliases...)
			return true
		}
	}
	return false
}

// CanonicalNames returns the canonical field names in schema order.
func (s *Schema) CanonicalNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Canonical
	}
	return names
}
