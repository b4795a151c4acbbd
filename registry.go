package enums

import (
	"fmt"
	"sort"

	"github.com/xy-planning-network/enums/filter"
	"github.com/xy-planning-network/enums/logger"
)

// An Entity groups the enum columns and named scopes of one entity type,
// usually one database table.
type Entity struct {
	Name        string
	Fields      []Field
	MultiFields []MultiField
	Scopes      []Scope
}

// A Scope is a named filter over an Entity, resolved once by NewRegistry.
//
// Exactly one form applies, checked in this order:
//   - Filter, when set, is used as is;
//   - IsNull matches records where Column is NULL;
//   - otherwise Labels, which must not be empty, matches records whose Column holds
//     (or, for a MultiField, contains) any of Labels.
//
// Exclude negates the result.
type Scope struct {
	Name    string
	Column  string
	Labels  []string
	Exclude bool
	IsNull  bool
	Filter  *filter.Filter
}

// A Registry is the process-wide, read-only set of Definitions, Fields and Scopes.
//
// Construct one with NewRegistry at startup and pass it to whatever needs it;
// all methods are safe for concurrent use.
type Registry struct {
	defs     map[string]*Definition
	entities map[string]*entity
	order    []string
}

type entity struct {
	name    string
	fields  map[string]*Field
	multis  map[string]*MultiField
	scopes  map[string]filter.Filter
	methods map[string]Predicate
	columns []string
}

// A RegistryOption configures NewRegistry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	log logger.Logger
}

// WithLogger logs registration to l.
func WithLogger(l logger.Logger) RegistryOption {
	return func(c *registryConfig) {
		c.log = l
	}
}

// NewRegistry validates and indexes entities.
//
// Registration is all or nothing: on error, no Registry returns.
// NewRegistry returns
//   - ErrNameCollision when two fields, or a field and a scope, on one entity generate the same method name;
//   - ErrUnknownLabel when a default or scope names a label its Definition lacks;
//   - ErrBadConfig for duplicate entities or columns, fields without a Definition,
//     scopes over unknown columns, or two different Definitions sharing a name.
func NewRegistry(entities []Entity, opts ...RegistryOption) (*Registry, error) {
	var cfg registryConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	reg := &Registry{
		defs:     make(map[string]*Definition),
		entities: make(map[string]*entity, len(entities)),
	}

	for _, e := range entities {
		ent, err := reg.register(e)
		if err != nil {
			if cfg.log != nil {
				cfg.log.Error("failed registering entity", &logger.LogContext{Entity: e.Name, Error: err})
			}

			return nil, err
		}

		if cfg.log != nil {
			cfg.log.Debug(
				fmt.Sprintf("registered %d fields, %d multi fields, %d scopes", len(ent.fields), len(ent.multis), len(ent.scopes)),
				&logger.LogContext{Entity: ent.name},
			)
		}
	}

	return reg, nil
}

func (reg *Registry) register(e Entity) (*entity, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("%w: entity has no name", ErrBadConfig)
	}

	if _, ok := reg.entities[e.Name]; ok {
		return nil, fmt.Errorf("%w: entity %q registered twice", ErrBadConfig, e.Name)
	}

	ent := &entity{
		name:    e.Name,
		fields:  make(map[string]*Field, len(e.Fields)),
		multis:  make(map[string]*MultiField, len(e.MultiFields)),
		scopes:  make(map[string]filter.Filter, len(e.Scopes)),
		methods: make(map[string]Predicate),
	}

	owners := make(map[string]string)
	claim := func(name, owner string) error {
		if prev, ok := owners[name]; ok {
			return fmt.Errorf("%w: %s.%s generated by both %s and %s", ErrNameCollision, e.Name, name, prev, owner)
		}
		owners[name] = owner
		return nil
	}

	if err := ent.addColumns(e, reg.defs); err != nil {
		return nil, err
	}

	for _, col := range ent.columns {
		if f, ok := ent.fields[col]; ok {
			for _, p := range f.predicates {
				if err := claim(p.Name, "field "+col); err != nil {
					return nil, err
				}
				ent.methods[p.Name] = p
			}
			continue
		}

		m := ent.multis[col]
		for _, label := range m.Definition.Labels() {
			if err := claim(m.MethodName(label), "multi field "+col); err != nil {
				return nil, err
			}
		}
	}

	for _, s := range e.Scopes {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: %s has a scope without a name", ErrBadConfig, e.Name)
		}

		if err := claim(s.Name, "scope "+s.Name); err != nil {
			return nil, err
		}

		f, err := ent.resolve(s)
		if err != nil {
			return nil, err
		}
		ent.scopes[s.Name] = f
	}

	// NOTE: only commit definitions once the whole entity checks out,
	// keeping a failed entity from leaking into reg.defs.
	for _, f := range ent.fields {
		reg.defs[f.Definition.Name()] = f.Definition
	}
	for _, m := range ent.multis {
		reg.defs[m.Definition.Name()] = m.Definition
	}

	reg.entities[e.Name] = ent
	reg.order = append(reg.order, e.Name)

	return ent, nil
}

func (ent *entity) addColumns(e Entity, defs map[string]*Definition) error {
	seenDefs := make(map[string]*Definition)
	checkDef := func(col string, d *Definition) error {
		if d == nil {
			return fmt.Errorf("%w: %s.%s has no definition", ErrBadConfig, e.Name, col)
		}

		for _, known := range []map[string]*Definition{defs, seenDefs} {
			if prev, ok := known[d.Name()]; ok && !prev.equal(d) {
				return fmt.Errorf("%w: %s.%s redefines %q", ErrBadConfig, e.Name, col, d.Name())
			}
		}
		seenDefs[d.Name()] = d

		return nil
	}

	for i := range e.Fields {
		f := e.Fields[i]
		if f.Column == "" {
			return fmt.Errorf("%w: %s has a field without a column", ErrBadConfig, e.Name)
		}

		if err := ent.checkColumn(f.Column); err != nil {
			return err
		}

		if err := checkDef(f.Column, f.Definition); err != nil {
			return err
		}

		if f.Default != "" && !f.Definition.Has(f.Default) {
			return fmt.Errorf("%w: %s.%s default %q", ErrUnknownLabel, e.Name, f.Column, f.Default)
		}

		f.entity = e.Name
		field := &f
		field.predicates = make([]Predicate, 0, f.Definition.Len())
		for _, l := range f.Definition.Pairs() {
			field.predicates = append(field.predicates, Predicate{
				Name:  field.MethodName(l.Name),
				Label: l.Name,
				Code:  l.Code,
				field: field,
			})
		}

		ent.fields[f.Column] = field
		ent.columns = append(ent.columns, f.Column)
	}

	for i := range e.MultiFields {
		m := e.MultiFields[i]
		m.Default = append([]string{}, m.Default...)
		if m.Column == "" {
			return fmt.Errorf("%w: %s has a multi field without a column", ErrBadConfig, e.Name)
		}

		if err := ent.checkColumn(m.Column); err != nil {
			return err
		}

		if err := checkDef(m.Column, m.Definition); err != nil {
			return err
		}

		if _, err := m.DefaultCodes(); err != nil {
			return fmt.Errorf("%s.%s default: %w", e.Name, m.Column, err)
		}

		m.entity = e.Name
		ent.multis[m.Column] = &m
		ent.columns = append(ent.columns, m.Column)
	}

	return nil
}

func (ent *entity) checkColumn(col string) error {
	_, single := ent.fields[col]
	_, multi := ent.multis[col]
	if single || multi {
		return fmt.Errorf("%w: %s.%s bound twice", ErrBadConfig, ent.name, col)
	}

	return nil
}

func (ent *entity) resolve(s Scope) (filter.Filter, error) {
	var f filter.Filter
	switch {
	case s.Filter != nil:
		f = *s.Filter

	case s.IsNull:
		if s.Column == "" {
			return filter.Filter{}, fmt.Errorf("%w: %s scope %q has no column", ErrBadConfig, ent.name, s.Name)
		}
		f = filter.IsNull(s.Column)

	default:
		if len(s.Labels) == 0 {
			return filter.Filter{}, fmt.Errorf("%w: %s scope %q has no labels", ErrBadConfig, ent.name, s.Name)
		}

		var err error
		if field, ok := ent.fields[s.Column]; ok {
			f, err = field.In(s.Labels...)
		} else if multi, ok := ent.multis[s.Column]; ok {
			f, err = multi.ContainingAny(s.Labels...)
		} else {
			return filter.Filter{}, fmt.Errorf("%w: %s scope %q uses unknown enum column %q", ErrBadConfig, ent.name, s.Name, s.Column)
		}

		if err != nil {
			return filter.Filter{}, fmt.Errorf("%s scope %q: %w", ent.name, s.Name, err)
		}
	}

	if s.Exclude {
		f = filter.Not(f)
	}

	return f, nil
}

// Entities returns the names of registered entities in registration order.
func (reg *Registry) Entities() []string { return append([]string{}, reg.order...) }

// Definition returns the Definition registered under name.
func (reg *Registry) Definition(name string) (*Definition, error) {
	d, ok := reg.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: definition %q", ErrNotExist, name)
	}

	return d, nil
}

// Definitions returns the names of all Definitions in use, sorted.
func (reg *Registry) Definitions() []string {
	names := make([]string, 0, len(reg.defs))
	for n := range reg.defs {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Field returns the single-valued Field bound to column on entity.
func (reg *Registry) Field(entity, column string) (*Field, error) {
	ent, err := reg.entity(entity)
	if err != nil {
		return nil, err
	}

	f, ok := ent.fields[column]
	if !ok {
		return nil, fmt.Errorf("%w: field %s.%s", ErrNotExist, entity, column)
	}

	return f, nil
}

// MultiField returns the MultiField bound to column on entity.
func (reg *Registry) MultiField(entity, column string) (*MultiField, error) {
	ent, err := reg.entity(entity)
	if err != nil {
		return nil, err
	}

	m, ok := ent.multis[column]
	if !ok {
		return nil, fmt.Errorf("%w: multi field %s.%s", ErrNotExist, entity, column)
	}

	return m, nil
}

// Fields returns the single-valued Fields of entity in declaration order.
func (reg *Registry) Fields(entity string) ([]*Field, error) {
	ent, err := reg.entity(entity)
	if err != nil {
		return nil, err
	}

	var fs []*Field
	for _, col := range ent.columns {
		if f, ok := ent.fields[col]; ok {
			fs = append(fs, f)
		}
	}

	return fs, nil
}

// MultiFields returns the MultiFields of entity in declaration order.
func (reg *Registry) MultiFields(entity string) ([]*MultiField, error) {
	ent, err := reg.entity(entity)
	if err != nil {
		return nil, err
	}

	var ms []*MultiField
	for _, col := range ent.columns {
		if m, ok := ent.multis[col]; ok {
			ms = append(ms, m)
		}
	}

	return ms, nil
}

// Predicate resolves a generated method name, like priority_high, on entity.
func (reg *Registry) Predicate(entity, name string) (Predicate, error) {
	ent, err := reg.entity(entity)
	if err != nil {
		return Predicate{}, err
	}

	p, ok := ent.methods[name]
	if !ok {
		return Predicate{}, fmt.Errorf("%w: predicate %s.%s", ErrNotExist, entity, name)
	}

	return p, nil
}

// Scope returns the filter registered as name on entity.
func (reg *Registry) Scope(entity, name string) (filter.Filter, error) {
	ent, err := reg.entity(entity)
	if err != nil {
		return filter.Filter{}, err
	}

	f, ok := ent.scopes[name]
	if !ok {
		return filter.Filter{}, fmt.Errorf("%w: scope %s.%s", ErrNotExist, entity, name)
	}

	return f, nil
}

// Scopes returns the names of the scopes on entity, sorted.
func (reg *Registry) Scopes(entity string) ([]string, error) {
	ent, err := reg.entity(entity)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ent.scopes))
	for n := range ent.scopes {
		names = append(names, n)
	}
	sort.Strings(names)

	return names, nil
}

// Init writes the default of every Field and MultiField of entity into rec.
func (reg *Registry) Init(entity string, rec Record) error {
	ent, err := reg.entity(entity)
	if err != nil {
		return err
	}

	for _, col := range ent.columns {
		if f, ok := ent.fields[col]; ok {
			err = f.Init(rec)
		} else {
			err = ent.multis[col].Init(rec)
		}

		if err != nil {
			return &ColumnError{Entity: entity, Column: col, Err: err}
		}
	}

	return nil
}

// Check reads every enum column of entity off rec
// and returns a *ColumnError for each stored code without a label.
// Check does not stop at the first problem.
func (reg *Registry) Check(entity string, rec Record) []error {
	ent, err := reg.entity(entity)
	if err != nil {
		return []error{err}
	}

	var errs []error
	for _, col := range ent.columns {
		if f, ok := ent.fields[col]; ok {
			if _, err := f.Get(rec); err != nil {
				errs = append(errs, &ColumnError{Entity: entity, Column: col, Err: err})
			}
			continue
		}

		if _, err := ent.multis[col].Labels(rec); err != nil {
			errs = append(errs, &ColumnError{Entity: entity, Column: col, Err: err})
		}
	}

	return errs
}

// Columns returns the enum columns of entity in declaration order.
func (reg *Registry) Columns(entity string) ([]string, error) {
	ent, err := reg.entity(entity)
	if err != nil {
		return nil, err
	}

	return append([]string{}, ent.columns...), nil
}

func (reg *Registry) entity(name string) (*entity, error) {
	ent, ok := reg.entities[name]
	if !ok {
		return nil, fmt.Errorf("%w: entity %q", ErrNotExist, name)
	}

	return ent, nil
}
