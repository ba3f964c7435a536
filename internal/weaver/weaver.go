// Package weaver synthesizes enhanced constructors and interceptor chains
// for classes with matched interceptors.
package weaver

import (
	"fmt"
	"strings"

	"github.com/toyz/camp/internal/compiler"
	"github.com/toyz/camp/internal/jsast"
	"github.com/toyz/camp/internal/jsdoc"
	"github.com/toyz/camp/internal/models"
)

// Generated identifiers
const (
	EnhancedConstructorFormat = "JSComp$enhanced$%s"
	InterceptorArguments      = "jscomp$interceptor$args"
	InterceptorThis           = "jscomp$interceptor$this"
	sliceCall                 = "Array.prototype.slice.call"
)

// VariableName turns a qualified class name into an identifier: the first
// letter is lowered and dots become underscores.
func VariableName(className string) string {
	if className == "" {
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(className[:1])+className[1:], ".", "_")
}

// EnhancedName returns the name of the enhanced constructor of className
func EnhancedName(className string) string {
	return fmt.Sprintf(EnhancedConstructorFormat, VariableName(className))
}

// Weaver emits interceptor code. Interceptor functions are addressed
// through the variable holding their module instance.
type Weaver struct {
	moduleVariable func(module string) string
}

// New creates a weaver. moduleVariable maps a module class name to the
// expression holding its configured instance.
func New(moduleVariable func(module string) string) *Weaver {
	if moduleVariable == nil {
		moduleVariable = VariableName
	}
	return &Weaver{moduleVariable: moduleVariable}
}

// Weave returns the statements to insert for class. The first call
// synthesizes the enhanced constructor, its inheritance and singleton
// registration, and one wrapper per intercepted method. Later calls only
// return wrappers for methods that gained interceptors since, so weaving an
// unchanged class again yields nothing.
func (w *Weaver) Weave(class *models.ClassInfo) []*jsast.Node {
	if !class.NeedsWeaving() {
		return nil
	}

	var stmts []*jsast.Node
	if !class.IsEnhanced() {
		stmts = append(stmts, w.enhancedConstructor(class)...)
	}
	for _, p := range class.Prototypes() {
		if p.Weaved || len(p.Interceptors) == 0 || !p.Function.IsFunction() {
			continue
		}
		wrapper := w.wrapper(class, p)
		p.Weaved = true
		p.Wrapper = wrapper
		stmts = append(stmts, wrapper)
	}
	return stmts
}

func (w *Weaver) enhancedConstructor(class *models.ClassInfo) []*jsast.Node {
	name := EnhancedName(class.Name)

	baseCall := jsast.NewCall(jsast.NewQualifiedName(compiler.BaseCall), jsast.NewThis())
	for _, param := range class.ParamNames {
		baseCall.AddChildToBack(jsast.NewName(param))
	}
	fn := jsast.NewFunction(name, class.ParamNames, jsast.NewBlock(jsast.NewExprResult(baseCall)))
	if class.Constructor != nil {
		fn.CopyPositionFromTree(class.Constructor)
	}
	fn.JSDoc = constructorDoc(class)

	stmts := []*jsast.Node{
		fn,
		jsast.NewExprResult(jsast.NewCall(jsast.NewQualifiedName(compiler.InheritsCall),
			jsast.NewName(name), jsast.NewQualifiedName(class.Name))),
	}
	if class.SingletonCall != nil {
		stmts = append(stmts, jsast.NewExprResult(jsast.NewCall(
			jsast.NewQualifiedName(compiler.SingletonGetterCall), jsast.NewName(name))))
	}
	class.EnhancedName = name
	return stmts
}

func constructorDoc(class *models.ClassInfo) *jsdoc.Info {
	doc := jsdoc.New()
	doc.RecordConstructor()
	doc.RecordBaseType("!" + class.Name)
	var original *jsdoc.Info
	if class.Constructor != nil {
		original = jsast.BestJSDoc(class.Constructor)
	}
	for _, param := range class.ParamNames {
		if typ, ok := original.ParameterType(param); ok {
			doc.RecordParameter(param, typ)
		}
	}
	return doc
}

// wrapper builds
//
//	/** @override */
//	Enhanced.prototype.m = function(params) {
//	  var jscomp$interceptor$args = Array.prototype.slice.call(arguments);
//	  var jscomp$interceptor$this = this;
//	  return <chain>;
//	};
//
// The first interceptor is the outermost link; the innermost link receives
// the original method.
func (w *Weaver) wrapper(class *models.ClassInfo, p *models.PrototypeInfo) *jsast.Node {
	body := jsast.NewBlock(
		jsast.NewVar(InterceptorArguments, jsast.NewCall(jsast.NewQualifiedName(sliceCall), jsast.NewName("arguments"))),
		jsast.NewVar(InterceptorThis, jsast.NewThis()),
		jsast.NewReturn(w.chain(class, p)),
	)
	fn := jsast.NewFunction("", p.ParamNames, body)

	assign := jsast.NewAssign(
		jsast.NewQualifiedName(class.EnhancedName+".prototype."+p.MethodName), fn)
	assign.JSDoc = jsdoc.New()
	assign.JSDoc.RecordOverride()

	stmt := jsast.NewExprResult(assign)
	stmt.CopyPositionFromTree(p.Function)
	return stmt
}

func (w *Weaver) chain(class *models.ClassInfo, p *models.PrototypeInfo) *jsast.Node {
	inner := jsast.NewQualifiedName(class.Name + ".prototype." + p.MethodName)
	var call *jsast.Node
	for i := len(p.Interceptors) - 1; i >= 0; i-- {
		call = w.interceptorCall(class, p, p.Interceptors[i], inner)
		if i > 0 {
			inner = jsast.NewFunction("", nil, jsast.NewBlock(jsast.NewReturn(call)))
		}
	}
	return call
}

func (w *Weaver) interceptorCall(class *models.ClassInfo, p *models.PrototypeInfo, i *models.InterceptorInfo, inner *jsast.Node) *jsast.Node {
	className, methodName := "", ""
	if i.ClassNameAccess {
		className = class.Name
	}
	if i.MethodNameAccess {
		methodName = p.MethodName
	}
	return jsast.NewCall(
		jsast.NewQualifiedName(w.moduleVariable(i.Module)+"."+i.Name),
		jsast.NewName(InterceptorThis),
		jsast.NewName(InterceptorArguments),
		jsast.NewString(className),
		jsast.NewString(methodName),
		inner,
	)
}
