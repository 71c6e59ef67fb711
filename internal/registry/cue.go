package registry

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/finchql/finch/internal/qlang"
)

// Binder supplies dialect and resolver implementations while a registry is
// loaded from CUE. The loader stays free of dialect imports; the caller
// decides which implementations back each dialect and resolver name.
type Binder interface {
	Builder(d qlang.Dialect) (CompleteQueryBuilder, error)
	SubQuery(d qlang.Dialect) (SubQueryBuilder, error)
	Values(d qlang.Dialect) (ValueResolver, error)
	// Field maps a resolver name ("plain", "localized", "attribute",
	// "price", "metadata") to its implementation.
	Field(name string) (FieldResolver, error)
}

// ConfigError is a registry-configuration failure with source position when
// the CUE evaluator can supply one.
type ConfigError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *ConfigError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// LoadDir builds a registry from the CUE files in dir. Configurations live
// under the top-level "objecttype" struct, one entry per object type:
//
//	objecttype: Product: {
//		dialect: "search"
//		prefix:  "+objectType:Product"
//		fetch:   "UID"
//		sort: [{field: "productCode"}]
//		field: ProductCode: {template: "productCode", type: "string"}
//	}
//
// Loading is fail-fast: the first invalid entry aborts the load.
func LoadDir(dir string, binder Binder) (*Registry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &ConfigError{Path: dir, Message: fmt.Sprintf("specs directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &ConfigError{Path: dir, Message: "not a directory"}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &ConfigError{Path: dir, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &ConfigError{Path: dir, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, cueError(dir, err)
	}

	typesVal := value.LookupPath(cue.ParsePath("objecttype"))
	if !typesVal.Exists() {
		return nil, &ConfigError{Path: dir, Message: "no objecttype definitions found"}
	}

	reg := New()
	iter, err := typesVal.Fields()
	if err != nil {
		return nil, cueError("objecttype", err)
	}
	for iter.Next() {
		cfg, err := compileConfiguration(iter.Label(), iter.Value(), binder)
		if err != nil {
			return nil, err
		}
		reg.Add(cfg)
	}
	return reg, nil
}

// compileConfiguration extracts one object-type configuration from its CUE
// value.
func compileConfiguration(label string, v cue.Value, binder Binder) (*Configuration, error) {
	path := "objecttype." + label

	objType, ok := qlang.ParseObjectType(label)
	if !ok {
		return nil, &ConfigError{Path: path, Message: fmt.Sprintf("unknown object type %q", label), Pos: v.Pos()}
	}

	dialectName, err := requiredString(v, "dialect", path)
	if err != nil {
		return nil, err
	}
	dialect, ok := qlang.ParseDialect(dialectName)
	if !ok {
		return nil, &ConfigError{Path: path + ".dialect", Message: fmt.Sprintf("unknown dialect %q", dialectName), Pos: v.Pos()}
	}

	cfg := NewConfiguration(objType, dialect)

	cfg.Prefix, err = requiredString(v, "prefix", path)
	if err != nil {
		return nil, err
	}

	if fetchVal := v.LookupPath(cue.ParsePath("fetch")); fetchVal.Exists() {
		name, err := fetchVal.String()
		if err != nil {
			return nil, cueError(path+".fetch", err)
		}
		fetch, ok := qlang.ParseFetchType(name)
		if !ok {
			return nil, &ConfigError{Path: path + ".fetch", Message: fmt.Sprintf("unknown fetch type %q", name), Pos: fetchVal.Pos()}
		}
		cfg.DefaultFetch = fetch
	}

	cfg.DefaultSorts, err = parseSorts(v, path)
	if err != nil {
		return nil, err
	}

	cfg.Builder, err = binder.Builder(dialect)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error(), Pos: v.Pos()}
	}

	if err := parseFields(v, path, cfg, binder); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseSorts extracts the optional default sort list.
func parseSorts(v cue.Value, path string) ([]qlang.SortClause, error) {
	sortVal := v.LookupPath(cue.ParsePath("sort"))
	if !sortVal.Exists() {
		return nil, nil
	}
	iter, err := sortVal.List()
	if err != nil {
		return nil, cueError(path+".sort", err)
	}
	var sorts []qlang.SortClause
	for iter.Next() {
		entry := iter.Value()
		field, err := requiredString(entry, "field", path+".sort")
		if err != nil {
			return nil, err
		}
		clause := qlang.SortClause{Field: field}
		if descVal := entry.LookupPath(cue.ParsePath("descending")); descVal.Exists() {
			desc, err := descVal.Bool()
			if err != nil {
				return nil, cueError(path+".sort.descending", err)
			}
			clause.Descending = desc
		}
		sorts = append(sorts, clause)
	}
	return sorts, nil
}

// parseFields extracts and registers the field descriptors.
func parseFields(v cue.Value, path string, cfg *Configuration, binder Binder) error {
	fieldsVal := v.LookupPath(cue.ParsePath("field"))
	if !fieldsVal.Exists() {
		return &ConfigError{Path: path, Message: "at least one field is required", Pos: v.Pos()}
	}
	iter, err := fieldsVal.Fields()
	if err != nil {
		return cueError(path+".field", err)
	}

	subQuery, err := binder.SubQuery(cfg.Dialect)
	if err != nil {
		return &ConfigError{Path: path, Message: err.Error(), Pos: v.Pos()}
	}
	values, err := binder.Values(cfg.Dialect)
	if err != nil {
		return &ConfigError{Path: path, Message: err.Error(), Pos: v.Pos()}
	}

	registered := 0
	for iter.Next() {
		fieldPath := path + ".field." + iter.Label()
		fv := iter.Value()

		key, ok := qlang.ParseFieldKey(iter.Label())
		if !ok {
			return &ConfigError{Path: fieldPath, Message: fmt.Sprintf("unknown field key %q", iter.Label()), Pos: fv.Pos()}
		}

		desc := &FieldDescriptor{
			Key:      key,
			SubQuery: subQuery,
			Values:   values,
		}

		desc.Template, err = requiredString(fv, "template", fieldPath)
		if err != nil {
			return err
		}

		typeName, err := requiredString(fv, "type", fieldPath)
		if err != nil {
			return err
		}
		desc.ValueType, ok = qlang.ParseFieldValueType(typeName)
		if !ok {
			return &ConfigError{Path: fieldPath + ".type", Message: fmt.Sprintf("unknown value type %q", typeName), Pos: fv.Pos()}
		}

		resolverName := "plain"
		if rv := fv.LookupPath(cue.ParsePath("resolver")); rv.Exists() {
			resolverName, err = rv.String()
			if err != nil {
				return cueError(fieldPath+".resolver", err)
			}
		}
		desc.Resolver, err = binder.Field(resolverName)
		if err != nil {
			return &ConfigError{Path: fieldPath + ".resolver", Message: err.Error(), Pos: fv.Pos()}
		}

		if tv := fv.LookupPath(cue.ParsePath("templates")); tv.Exists() {
			listIter, err := tv.List()
			if err != nil {
				return cueError(fieldPath+".templates", err)
			}
			for listIter.Next() {
				s, err := listIter.Value().String()
				if err != nil {
					return cueError(fieldPath+".templates", err)
				}
				desc.Templates = append(desc.Templates, s)
			}
		}

		if mv := fv.LookupPath(cue.ParsePath("matchAll")); mv.Exists() {
			desc.MatchAll, err = mv.Bool()
			if err != nil {
				return cueError(fieldPath+".matchAll", err)
			}
		}

		if ev := fv.LookupPath(cue.ParsePath("values")); ev.Exists() {
			listIter, err := ev.List()
			if err != nil {
				return cueError(fieldPath+".values", err)
			}
			for listIter.Next() {
				s, err := listIter.Value().String()
				if err != nil {
					return cueError(fieldPath+".values", err)
				}
				desc.EnumValues = append(desc.EnumValues, s)
			}
		}
		if desc.ValueType == qlang.ValueEnum && len(desc.EnumValues) == 0 {
			return &ConfigError{Path: fieldPath, Message: "enum fields require a values list", Pos: fv.Pos()}
		}

		cfg.Register(desc)
		registered++
	}
	if registered == 0 {
		return &ConfigError{Path: path, Message: "at least one field is required", Pos: v.Pos()}
	}
	return nil
}

// requiredString reads a mandatory string attribute.
func requiredString(v cue.Value, name, path string) (string, error) {
	attr := v.LookupPath(cue.ParsePath(name))
	if !attr.Exists() {
		return "", &ConfigError{Path: path + "." + name, Message: name + " is required", Pos: v.Pos()}
	}
	s, err := attr.String()
	if err != nil {
		return "", cueError(path+"."+name, err)
	}
	return s, nil
}

// cueError extracts position info from CUE errors.
func cueError(path string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) > 0 {
		if positions := cueerrors.Positions(errs[0]); len(positions) > 0 {
			return &ConfigError{Path: path, Message: errs[0].Error(), Pos: positions[0]}
		}
	}
	return &ConfigError{Path: path, Message: err.Error()}
}
