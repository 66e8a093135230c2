// Package lang rewrites the formulas of a DAE model for MATLAB and orders
// its assignment states.
//
// Formulas are processed at the token level; nothing here builds a syntax
// tree. [Tokenize] and [Lexer] split a formula into names, numbers,
// operators, punctuation, and string literals. [References] collects the
// state names a formula mentions. [Translate] rewrites a formula so that
// arithmetic is elementwise and parameters are read from a namespace
// structure:
//
//	Translate("a*b+c", Set{"a": {}})  // "p.a.*b + c"
//
// [Order] arranges states so that each assignment state follows every
// state its equation references, and reports a [DependencyError] when no
// such arrangement exists.
package lang
