package mixin

import (
	"strings"

	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/errors"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/jsdoc"
	"github.com/toyz/camp/internal/models"
	"github.com/toyz/camp/internal/utils"
)

// SpecializedName returns the trait member name of property specialized for
// target: JSComp$$<target with dots as $>$$<property>
func SpecializedName(target, property string) string {
	return SpecializedPrefix + strings.ReplaceAll(target, ".", "$") + "$$" + property
}

// composer installs trait members on the classes mixing them in
type composer struct {
	ctx *compiler.Context

	// composed remembers the members installed per target, so requirements
	// of a subclass can be met by members mixed into its ancestors
	composed map[string]map[string]bool
}

func newComposer(ctx *compiler.Context) *composer {
	return &composer{ctx: ctx, composed: make(map[string]map[string]bool)}
}

// requires reports whether trait requires name, directly or through the
// traits it requires
func (c *composer) requires(trait *models.TraitInfo, name string) bool {
	seen := map[string]bool{}
	pending := append([]string(nil), trait.Requires...)
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]
		if next == name {
			return true
		}
		if seen[next] {
			continue
		}
		seen[next] = true
		if t, ok := c.ctx.Registry.Trait(next); ok {
			pending = append(pending, t.Requires...)
		}
	}
	return false
}

// propagateRequirements copies the members of required traits into the
// traits requiring them until nothing changes
func (c *composer) propagateRequirements() {
	traits := c.ctx.Registry.Traits()
	reported := map[string]bool{}
	reportOnce := func(trait *models.TraitInfo, t errors.DiagnosticType, args ...interface{}) {
		key := t.Key + ":" + trait.RefName + ":" + args[0].(string)
		if !reported[key] {
			reported[key] = true
			c.ctx.Report(trait.Call, t, args...)
		}
	}

	for changed := true; changed; {
		changed = false
		for _, trait := range traits {
			for _, name := range trait.Requires {
				if name == trait.RefName {
					reportOnce(trait, CircularReference, trait.RefName)
					continue
				}
				required, ok := c.ctx.Registry.Trait(name)
				if !ok {
					reportOnce(trait, RequiredTraitNotExists, name, trait.RefName)
					continue
				}
				if c.requires(required, trait.RefName) {
					reportOnce(trait, CircularReference, trait.RefName)
					continue
				}
				if c.extend(trait, required) {
					changed = true
				}
			}
		}
	}
}

// extend adds the members of required to trait as `name: Required.name`.
// Members the trait defines itself win; a concrete member replaces a
// propagated requirement.
func (c *composer) extend(trait, required *models.TraitInfo) bool {
	changed := false
	for _, p := range required.Properties() {
		if p.Specialized || p.PropagatedInto(trait.RefName) {
			continue
		}
		p.MarkPropagated(trait.RefName)

		if existing, ok := trait.Property(p.Name); ok {
			switch {
			case existing.SameOrigin(p), p.Require:
				continue
			case existing.Require:
			case existing.Implicit:
				continue
			default:
				c.ctx.Report(p.Key, UnresolvedMethod, p.Name, p.CurrentHolder, existing.CurrentHolder)
				continue
			}
		}

		derived := p.Derive(trait.RefName)
		derived.Key = jsast.NewStringKey(p.Name, access(jsast.NewQualifiedName(required.RefName), p.Name))
		derived.Key.JSDoc = p.Key.JSDoc.Clone()
		derived.Key.CopyPositionFromTree(p.Key)
		trait.AddProperty(derived)
		c.ctx.ReportCodeChange()
		changed = true
	}
	return changed
}

// claim is a member selected for installation on a target
type claim struct {
	property *models.TraitProperty
	mixin    *models.MixinInfo
}

// compose runs the composition state machine for one target over every
// mixin naming it, in declaration order
func (c *composer) compose(target string, mixins []*models.MixinInfo) *models.TraitImplementationInfo {
	impl := models.NewTraitImplementationInfo(target)
	impl.State = models.CompositionComposing

	claims := utils.NewOrderedRegistry[string, *claim]()
	conflicts := map[string]bool{}

	for _, m := range mixins {
		for _, name := range m.Traits {
			if name == target {
				c.ctx.Report(m.Call, CircularReference, target)
				continue
			}
			trait, ok := c.ctx.Registry.Trait(name)
			if !ok {
				c.ctx.Report(m.Call, RequiredTraitNotExists, name, target)
				continue
			}
			if c.requires(trait, target) {
				c.ctx.Report(m.Call, CircularReference, target)
				continue
			}

			for _, p := range trait.Properties() {
				if p.Specialized || p.PropagatedInto(target) {
					continue
				}
				if _, overridden := m.Override(p.Name); overridden {
					continue
				}
				p.MarkPropagated(target)
				if p.Require {
					impl.Require(p)
					continue
				}

				d := p.Derive(target)
				existing, result := impl.Claim(d)
				switch result {
				case models.ClaimNew:
					claims.Set(p.Name, &claim{property: p, mixin: m})
				case models.ClaimConflict:
					c.ctx.Report(m.Call, UnresolvedMethod, p.Name, d.LastHolder, existing.LastHolder)
					conflicts[p.Name] = true
				}
			}
		}
	}

	installed := c.composedMembers(target)
	for _, cl := range claims.Values() {
		if conflicts[cl.property.Name] {
			continue
		}
		c.install(target, cl)
		installed[cl.property.Name] = true
	}
	for _, m := range mixins {
		c.installOverrides(m)
		for _, key := range m.Overrides() {
			installed[key.Str] = true
		}
	}

	for _, req := range impl.Unimplemented() {
		if c.implements(target, req.Property.Name) {
			impl.MarkImplemented(req.Property.Name)
		}
	}

	unimplemented := impl.Unimplemented()
	last := mixins[len(mixins)-1]
	for _, req := range unimplemented {
		c.ctx.Report(last.Call, RequiredPropertyNotImplemented,
			req.Property.Name, req.Property.CurrentHolder, req.Property.TraitName)
	}

	switch {
	case len(conflicts) > 0:
		impl.State = models.CompositionConflict
	case len(unimplemented) > 0:
		impl.State = models.CompositionUnsatisfied
	default:
		impl.State = models.CompositionComposed
	}
	return impl
}

func (c *composer) composedMembers(target string) map[string]bool {
	members, ok := c.composed[target]
	if !ok {
		members = make(map[string]bool)
		c.composed[target] = members
	}
	return members
}

// implements reports whether target has name through a composed trait, its
// own prototype or an ancestor
func (c *composer) implements(target, name string) bool {
	for _, class := range append([]string{target}, c.ctx.Registry.Ancestors(target)...) {
		if c.composed[class][name] {
			return true
		}
		if _, ok := c.ctx.Registry.Prototype(class, name); ok {
			return true
		}
		if info, ok := c.ctx.Registry.Class(class); ok {
			if _, ok := info.Prototype(name); ok {
				return true
			}
		}
	}
	return false
}

// install emits Target.prototype.name = Origin.name in place of the mixin
// statement. Functions using this are first specialized into a copy typed
// for the target.
func (c *composer) install(target string, cl *claim) {
	p := cl.property
	origin, ok := c.ctx.Registry.Trait(p.TraitName)
	if !ok {
		return
	}

	member := p.Name
	if p.IsFunction && p.ThisAccess {
		member = SpecializedName(target, p.Name)
		if _, exists := origin.Property(member); !exists {
			origin.AddProperty(specialize(p, member, target))
		}
	}

	assign := jsast.NewAssign(
		access(jsast.NewQualifiedName(target+"."+prototypeSegment), p.Name),
		access(jsast.NewQualifiedName(origin.RefName), member))
	c.emit(cl.mixin, jsast.NewExprResult(assign).CopyPositionFromTree(p.Key))
}

// specialize copies the function of p into a new trait member whose
// receiver is typed as target
func specialize(p *models.TraitProperty, name, target string) *models.TraitProperty {
	value := p.Value.Clone()
	value.JSDoc = nil
	key := jsast.NewStringKey(name, value)
	key.JSDoc = p.Key.JSDoc.Clone()
	if key.JSDoc == nil {
		key.JSDoc = jsdoc.New()
	}
	key.JSDoc.RecordThisType(target)
	key.CopyPositionFromTree(p.Key)

	specialized := models.NewTraitProperty(p.TraitName, key)
	specialized.Specialized = true
	specialized.Implicit = false
	specialized.ThisType = target
	return specialized
}

// installOverrides emits Target.prototype.key = value for every member of
// the mixin's third argument
func (c *composer) installOverrides(m *models.MixinInfo) {
	for _, key := range m.Overrides() {
		value := key.FirstChild()
		if value == nil {
			continue
		}
		assign := jsast.NewAssign(
			access(jsast.NewQualifiedName(m.Target+"."+prototypeSegment), key.Str),
			value.Clone())
		assign.JSDoc = key.JSDoc.Clone()
		c.emit(m, jsast.NewExprResult(assign).CopyPositionFromTree(key))
	}
}

// emit inserts stmt before the mixin statement, keeping emission order
func (c *composer) emit(m *models.MixinInfo, stmt *jsast.Node) {
	if m.Statement.Parent() == nil {
		return
	}
	m.Statement.Parent().AddChildBefore(stmt, m.Statement)
	c.ctx.ReportCodeChange()
}

// unwrapTraits replaces every camp.trait call by its member object
func (c *composer) unwrapTraits() {
	for _, trait := range c.ctx.Registry.Traits() {
		if !trait.Call.IsAttached() {
			continue
		}
		body := trait.Body
		if body.Parent() != nil {
			body.Detach()
		}
		trait.Call.ReplaceWith(body.CopyPositionFromTree(trait.Call))
		c.ctx.ReportCodeChange()
	}
}

func access(owner *jsast.Node, name string) *jsast.Node {
	if jsast.IsIdentifier(name) {
		return jsast.NewGetProp(owner, name)
	}
	return jsast.NewNode(jsast.GetElem, "", owner, jsast.NewString(name))
}
