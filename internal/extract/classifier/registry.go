package classifier

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/extract/datetime"
	"github.com/custodia-labs/shotbrain/internal/extract/vietqr"
)

// Dependencies are the shared collaborators rules are built from.
type Dependencies struct {
	Resolver *vietqr.Resolver
	Parser   *datetime.Parser
}

// BuilderFunc creates a Rule from shared dependencies.
type BuilderFunc func(deps Dependencies) Rule

// Registry maps rule names to their builders.
// It allows the cascade order to be set from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new, empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a rule builder to the registry.
// Name should match the rule's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a rule by name.
func (r *Registry) Build(name string, deps Dependencies) (Rule, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule %q: %w", name, domain.ErrUnsupportedType)
	}
	return builder(deps), nil
}

// BuildAll creates rules for names, in order.
func (r *Registry) BuildAll(names []string, deps Dependencies) ([]Rule, error) {
	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		rule, err := r.Build(name, deps)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Has returns true if a rule with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered rule names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterDefaults registers all built-in rules with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(domain.RuleQRBank, func(d Dependencies) Rule { return NewQRBankRule(d.Resolver) })
	r.Register(domain.RuleURL, func(Dependencies) Rule { return URLRule{} })
	r.Register(domain.RulePhone, func(Dependencies) Rule { return PhoneRule{} })
	r.Register(domain.RuleEventPattern, func(d Dependencies) Rule { return NewEventPatternRule(d.Parser) })
	r.Register(domain.RuleAddress, func(Dependencies) Rule { return AddressRule{} })
	r.Register(domain.RuleAnnotation, func(d Dependencies) Rule { return NewAnnotationRule(d.Parser) })
}
