package jsparse

// Tree-sitter JavaScript node type names
const (
	tsProgram             = "program"
	tsComment             = "comment"
	tsExpressionStatement = "expression_statement"
	tsVariableDeclaration = "variable_declaration"
	tsLexicalDeclaration  = "lexical_declaration"
	tsVariableDeclarator  = "variable_declarator"
	tsFunctionDeclaration = "function_declaration"
	tsReturnStatement     = "return_statement"
	tsIfStatement         = "if_statement"
	tsElseClause          = "else_clause"
	tsStatementBlock      = "statement_block"
	tsEmptyStatement      = "empty_statement"
	tsThrowStatement      = "throw_statement"
	tsTryStatement        = "try_statement"
	tsWhileStatement      = "while_statement"
	tsDoStatement         = "do_statement"
	tsForStatement        = "for_statement"
	tsForInStatement      = "for_in_statement"
	tsSwitchStatement     = "switch_statement"
	tsSwitchCase          = "switch_case"
	tsSwitchDefault       = "switch_default"
	tsLabeledStatement    = "labeled_statement"

	tsFunction           = "function"
	tsFunctionExpression = "function_expression"
	tsFormalParameters   = "formal_parameters"

	tsIdentifier                = "identifier"
	tsPropertyIdentifier        = "property_identifier"
	tsShorthandPropertyIdent    = "shorthand_property_identifier"
	tsThis                      = "this"
	tsSuper                     = "super"
	tsString                    = "string"
	tsNumber                    = "number"
	tsTrue                      = "true"
	tsFalse                     = "false"
	tsNull                      = "null"
	tsUndefined                 = "undefined"
	tsParenthesizedExpression   = "parenthesized_expression"
	tsMemberExpression          = "member_expression"
	tsSubscriptExpression       = "subscript_expression"
	tsCallExpression            = "call_expression"
	tsNewExpression             = "new_expression"
	tsArguments                 = "arguments"
	tsAssignmentExpression      = "assignment_expression"
	tsAugmentedAssignment       = "augmented_assignment_expression"
	tsBinaryExpression          = "binary_expression"
	tsUnaryExpression           = "unary_expression"
	tsTernaryExpression         = "ternary_expression"
	tsSequenceExpression        = "sequence_expression"
	tsArray                     = "array"
	tsObject                    = "object"
	tsPair                      = "pair"
	tsMethodDefinition          = "method_definition"
	tsComputedPropertyName      = "computed_property_name"
	tsOptionalChain             = "optional_chain"
	tsPrivatePropertyIdentifier = "private_property_identifier"
	tsTemplateString            = "template_string"

	tsError = "ERROR"
)
