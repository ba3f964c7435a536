package injections

import (
	"strconv"
	"strings"

	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/jsdoc"
	"github.com/toyz/camp/internal/models"
)

// member builds owner.name, falling back to owner['name'] for keys that are
// not identifiers
func member(owner *jsast.Node, name string) *jsast.Node {
	if jsast.IsIdentifier(name) {
		return jsast.NewGetProp(owner, name)
	}
	return jsast.NewNode(jsast.GetElem, "", owner, jsast.NewString(name))
}

// rewriteModule turns the configure method of m into plain code that
// installs its bindings and interceptors on the module instance
func rewriteModule(ctx *compiler.Context, m *models.ModuleInfo) {
	for _, b := range m.Bindings() {
		rewriteBinding(ctx, b)
	}
	for _, i := range m.Interceptors {
		rewriteInterceptor(ctx, i)
	}
	if m.Configure != nil {
		rewriteConfigure(ctx, m.Configure)
	}
}

func rewriteBinding(ctx *compiler.Context, b *models.BindingInfo) {
	stmt := jsast.StatementOf(b.Call)
	if stmt == nil {
		return
	}
	if b.Kind == models.BindingTo {
		if _, ok := ctx.Registry.Class(b.ClassName); ok {
			stmt.Detach()
			ctx.ReportCodeChange()
			return
		}
	}

	expr := b.Expression.Detach()
	assign := jsast.NewExprResult(jsast.NewAssign(member(jsast.NewThis(), b.Name), expr))
	assign.CopyPositionFromTree(stmt)
	stmt.ReplaceWith(assign)
	ctx.ReportCodeChange()
}

// rewriteInterceptor turns
//
//	binder.bindInterceptor(m1, m2, function(invocation) {...});
//
// into
//
//	this.jscomp$interceptor$N = function(context, args, className, methodName, proceed) {...};
func rewriteInterceptor(ctx *compiler.Context, i *models.InterceptorInfo) {
	stmt := jsast.StatementOf(i.Call)
	if stmt == nil {
		return
	}
	fn := i.Function

	if params := fn.ParamNames(); len(params) > 0 {
		invocation := receiver{param: params[0], typeName: MethodInvocation, methods: invocationMethods}
		for _, u := range invocation.uses(fn) {
			if u.kind != useCall {
				continue
			}
			if replacement := invocationReplacement(u.method); replacement != nil {
				u.node.ReplaceWith(replacement.CopyPositionFromTree(u.node))
			}
		}
	}

	fn.FunctionParams().ReplaceWith(jsast.NewParamList(
		invocationContext, invocationArgs, invocationClassName, invocationMethodName, invocationProceed))
	fn.JSDoc = nil

	i.Name = InterceptorNamePrefix + strconv.Itoa(ctx.NextID(interceptorCounter))
	fn.Detach()
	assign := jsast.NewAssign(member(jsast.NewThis(), i.Name), fn)
	assign.JSDoc = interceptorDoc()

	replacement := jsast.NewExprResult(assign)
	replacement.CopyPositionFromTree(stmt)
	stmt.ReplaceWith(replacement)
	ctx.ReportCodeChange()
}

func invocationReplacement(method string) *jsast.Node {
	switch method {
	case proceedMethod:
		return jsast.NewCall(jsast.NewGetProp(jsast.NewName(invocationProceed), "apply"),
			jsast.NewName(invocationContext), jsast.NewName(invocationArgs))
	case getThisMethod:
		return jsast.NewName(invocationContext)
	case getArgumentsMethod:
		return jsast.NewName(invocationArgs)
	case getClassNameMethod, getConstructorNameMethod:
		return jsast.NewName(invocationClassName)
	case getMethodNameMethod:
		return jsast.NewName(invocationMethodName)
	case getQualifiedNameMethod:
		return jsast.NewAdd(jsast.NewName(invocationClassName),
			jsast.NewAdd(jsast.NewString("."), jsast.NewName(invocationMethodName)))
	}
	return nil
}

func interceptorDoc() *jsdoc.Info {
	doc := jsdoc.New()
	doc.RecordParameter(invocationContext, "*")
	doc.RecordParameter(invocationArgs, "Array")
	doc.RecordParameter(invocationClassName, "string")
	doc.RecordParameter(invocationMethodName, "string")
	doc.RecordParameter(invocationProceed, "Function")
	return doc
}

// rewriteConfigure makes configure chainable from the module constructor
// call. The binder parameter and the doc describing it are dropped since the
// method is now called without arguments.
func rewriteConfigure(ctx *compiler.Context, fn *jsast.Node) {
	body := fn.FunctionBody()
	ret := jsast.NewReturn(jsast.NewThis())
	if last := body.LastChild(); last != nil {
		ret.CopyPositionFromTree(last)
	} else {
		ret.CopyPositionFromTree(body)
	}
	body.AddChildToBack(ret)

	if fn.FunctionParams().HasChildren() {
		fn.FunctionParams().DetachChildren()
		clearDoc(fn)
	}
	ctx.ReportCodeChange()
}

// clearDoc removes the doc comment of fn and of the declaration binding it
func clearDoc(fn *jsast.Node) {
	fn.JSDoc = nil
	decl, ok := jsast.DeclarationOf(fn)
	if !ok {
		return
	}
	target := decl.DocTarget()
	target.JSDoc = nil
	if stmt := target.Parent(); target.Kind == jsast.Assign && stmt != nil && stmt.IsExprResult() {
		stmt.JSDoc = nil
	}
}

// methodName strips an explicit parameter list from an injection method
// specification such as "setFoo(a, b)"
func methodName(spec string) string {
	if i := strings.IndexByte(spec, '('); i >= 0 {
		spec = spec[:i]
	}
	return strings.TrimSpace(spec)
}
