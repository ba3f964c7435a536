package models

import (
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/utils"
)

// TraitRequireMarker is the member value declaring an abstract trait
// property
const TraitRequireMarker = "camp.trait.require"

// DefaultThisType is the receiver type of an unspecialized trait function
const DefaultThisType = "Object"

// TraitProperty is one member of a trait
type TraitProperty struct {
	Name          string      // member name
	TraitName     string      // trait that first defined the member
	Value         *jsast.Node // member value
	Key           *jsast.Node // object literal key defining the member
	CurrentHolder string      // trait or class the property was last copied into
	LastHolder    string      // previous holder
	ThisType      string      // declared receiver type
	Specialized   bool        // receiver-specialized copy for one class
	Implicit      bool        // collected from a trait body, not propagated
	Require       bool        // abstract member to be supplied elsewhere
	IsFunction    bool        // value is a function
	ThisAccess    bool        // function refers to its receiver

	propagated map[string]bool
}

// NewTraitProperty creates an implicit property from a trait body key
func NewTraitProperty(traitName string, key *jsast.Node) *TraitProperty {
	value := key.FirstChild()
	p := &TraitProperty{
		Name:          key.Str,
		TraitName:     traitName,
		Value:         value,
		Key:           key,
		CurrentHolder: traitName,
		LastHolder:    traitName,
		ThisType:      DefaultThisType,
		Implicit:      true,
		propagated:    make(map[string]bool),
	}
	if value == nil {
		return p
	}
	p.Require = value.MatchesQualifiedName(TraitRequireMarker)
	p.IsFunction = value.IsFunction()
	if p.IsFunction {
		p.ThisAccess = jsast.ReferencesThis(value)
	}
	return p
}

// Derive returns a copy re-homed into holder. The copy is explicit, keeps
// the defining trait, and starts with an empty propagation set.
func (p *TraitProperty) Derive(holder string) *TraitProperty {
	derived := *p
	derived.LastHolder = p.CurrentHolder
	derived.CurrentHolder = holder
	derived.Implicit = false
	derived.propagated = make(map[string]bool)
	return &derived
}

// SameOrigin reports whether both properties come from one definition
func (p *TraitProperty) SameOrigin(other *TraitProperty) bool {
	return p.Name == other.Name && p.TraitName == other.TraitName
}

// PropagatedInto reports whether the property was already copied into
// holder
func (p *TraitProperty) PropagatedInto(holder string) bool {
	return p.propagated[holder]
}

// MarkPropagated records that the property was copied into holder
func (p *TraitProperty) MarkPropagated(holder string) {
	if p.propagated == nil {
		p.propagated = make(map[string]bool)
	}
	p.propagated[holder] = true
}

// TraitInfo is a camp.trait declaration
type TraitInfo struct {
	RefName   string      // name the trait is assigned to
	Statement *jsast.Node // top level statement declaring the trait
	Call      *jsast.Node // camp.trait call
	Body      *jsast.Node // member object literal
	Requires  []string    // traits this trait requires

	properties *utils.OrderedRegistry[string, *TraitProperty]
}

// NewTraitInfo creates a trait and collects one implicit property per body
// member
func NewTraitInfo(refName string, stmt, call, body *jsast.Node, requires []string) *TraitInfo {
	t := &TraitInfo{
		RefName:    refName,
		Statement:  stmt,
		Call:       call,
		Body:       body,
		Requires:   requires,
		properties: utils.NewOrderedRegistry[string, *TraitProperty](),
	}
	for _, key := range body.Children() {
		if key.IsStringKey() {
			t.properties.Set(key.Str, NewTraitProperty(refName, key))
		}
	}
	return t
}

// Property looks up a member by name
func (t *TraitInfo) Property(name string) (*TraitProperty, bool) {
	return t.properties.Get(name)
}

// Properties returns the members in definition order
func (t *TraitInfo) Properties() []*TraitProperty {
	return t.properties.Values()
}

// AddProperty adds or replaces a member. The property's key is appended to
// the body when it is not already part of it.
func (t *TraitInfo) AddProperty(p *TraitProperty) {
	if old, ok := t.properties.Get(p.Name); ok && old.Key != p.Key && old.Key != nil && old.Key.Parent() == t.Body {
		t.Body.RemoveChild(old.Key)
	}
	if p.Key != nil && p.Key.Parent() == nil {
		t.Body.AddChildToBack(p.Key)
	}
	t.properties.Set(p.Name, p)
}

// MixinInfo is a camp.mixin declaration
type MixinInfo struct {
	Target    string      // class receiving the traits
	Traits    []string    // traits in composition order
	Statement *jsast.Node // top level statement
	Call      *jsast.Node // camp.mixin call

	overrides *utils.OrderedRegistry[string, *jsast.Node]
}

// NewMixinInfo creates a mixin declaration; overrides is the optional third
// argument
func NewMixinInfo(target string, traits []string, stmt, call, overrides *jsast.Node) *MixinInfo {
	m := &MixinInfo{
		Target:    target,
		Traits:    traits,
		Statement: stmt,
		Call:      call,
		overrides: utils.NewOrderedRegistry[string, *jsast.Node](),
	}
	if overrides != nil {
		for _, key := range overrides.Children() {
			if key.IsStringKey() {
				m.overrides.Set(key.Str, key)
			}
		}
	}
	return m
}

// Override returns the key overriding or excluding a trait member
func (m *MixinInfo) Override(name string) (*jsast.Node, bool) {
	return m.overrides.Get(name)
}

// Overrides returns the override keys in declaration order
func (m *MixinInfo) Overrides() []*jsast.Node {
	return m.overrides.Values()
}

// ClaimResult is the outcome of claiming a member name for a target
type ClaimResult int

const (
	ClaimNew       ClaimResult = iota // name was free
	ClaimDuplicate                    // same definition reached again
	ClaimConflict                     // another definition owns the name
)

// Implementation tracks whether a required member is provided
type Implementation struct {
	Property    *TraitProperty // the requiring property
	Implemented bool
}

// TraitImplementationInfo accumulates member ownership while one target
// class is composed
type TraitImplementationInfo struct {
	Target string
	State  CompositionState

	obligations *utils.OrderedRegistry[string, *Implementation]
	guard       map[string]*TraitProperty
}

// NewTraitImplementationInfo creates an empty accumulator for target
func NewTraitImplementationInfo(target string) *TraitImplementationInfo {
	return &TraitImplementationInfo{
		Target:      target,
		obligations: utils.NewOrderedRegistry[string, *Implementation](),
		guard:       make(map[string]*TraitProperty),
	}
}

// Claim registers p as the owner of its name. On conflict the existing
// owner is returned.
func (t *TraitImplementationInfo) Claim(p *TraitProperty) (*TraitProperty, ClaimResult) {
	existing, ok := t.guard[p.Name]
	if !ok {
		t.guard[p.Name] = p
		return nil, ClaimNew
	}
	if existing.SameOrigin(p) {
		return existing, ClaimDuplicate
	}
	return existing, ClaimConflict
}

// Owner returns the property owning name
func (t *TraitImplementationInfo) Owner(name string) (*TraitProperty, bool) {
	p, ok := t.guard[name]
	return p, ok
}

// Require records an obligation; the first requiring property is kept
func (t *TraitImplementationInfo) Require(p *TraitProperty) {
	if !t.obligations.Has(p.Name) {
		t.obligations.Set(p.Name, &Implementation{Property: p})
	}
}

// MarkImplemented discharges the obligation for name, if any
func (t *TraitImplementationInfo) MarkImplemented(name string) {
	if impl, ok := t.obligations.Get(name); ok {
		impl.Implemented = true
	}
}

// Unimplemented returns the obligations never discharged, in order
func (t *TraitImplementationInfo) Unimplemented() []*Implementation {
	return t.obligations.Filter(func(_ string, impl *Implementation) bool {
		return !impl.Implemented
	})
}
