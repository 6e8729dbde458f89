package lazydi

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// Shared test types and constructors used across test files.

type FooInterface interface {
	FooName() string
}

type BarInterface interface {
	BarName() string
}

type UnlinkedInterface interface {
	Unlinked()
}

type Foo struct{ name string }

func (f *Foo) FooName() string { return f.name }

type AnotherFoo struct{ name string }

func (f *AnotherFoo) FooName() string { return f.name }

type Bar struct{ name string }

func (b *Bar) BarName() string { return b.name }

type Baz struct{ foo *Foo }

func (b *Baz) Foo() *Foo { return b.foo }

type FooBar struct {
	foo FooInterface
	bar BarInterface
}

func (fb *FooBar) Foo() FooInterface { return fb.foo }
func (fb *FooBar) Bar() BarInterface { return fb.bar }

type Qux struct{ name string }

type FooBarQux struct {
	FooBar
	qux *Qux
}

func (fbq *FooBarQux) Qux() *Qux { return fbq.qux }

type NeedsUnlinked struct{ dep UnlinkedInterface }

type CycleA struct{ b *CycleB }
type CycleB struct{ a *CycleA }

type Left struct {
	right *Right
	qux   *Qux
}
type Right struct{ left *Left }

type Broken struct{}

var errBroken = errors.New("broken on purpose")

func NewFoo() *Foo               { return &Foo{name: "foo"} }
func NewAnotherFoo() *AnotherFoo { return &AnotherFoo{name: "another foo"} }
func NewBar() *Bar               { return &Bar{name: "bar"} }
func NewBaz(foo *Foo) *Baz       { return &Baz{foo: foo} }
func NewQux(name string) *Qux    { return &Qux{name: name} }

func NewFooBar(foo FooInterface, bar BarInterface) *FooBar {
	return &FooBar{foo: foo, bar: bar}
}

func NewFooBarQux(foo FooInterface, bar BarInterface, qux *Qux) *FooBarQux {
	return &FooBarQux{FooBar: FooBar{foo: foo, bar: bar}, qux: qux}
}

func NewNeedsUnlinked(dep UnlinkedInterface) *NeedsUnlinked {
	return &NeedsUnlinked{dep: dep}
}

func NewCycleA(b *CycleB) *CycleA { return &CycleA{b: b} }
func NewCycleB(a *CycleA) *CycleB { return &CycleB{a: a} }

func NewLeft(right *Right, qux *Qux) *Left { return &Left{right: right, qux: qux} }
func NewRight(left *Left) *Right           { return &Right{left: left} }

func NewBroken() (*Broken, error) { return nil, errBroken }

// newTestTypes returns a catalog with every test constructor registered.
func newTestTypes(t *testing.T) *Types {
	t.Helper()
	types := NewTypes()
	require.NoError(t, types.Constructor(
		NewFoo,
		NewAnotherFoo,
		NewBar,
		NewBaz,
		NewQux,
		NewFooBar,
		NewFooBarQux,
		NewNeedsUnlinked,
		NewCycleA,
		NewCycleB,
		NewBroken,
	))
	return types
}

// value returns a factory that always produces v.
func value(v any) Factory {
	return func() (any, error) {
		return v, nil
	}
}

var (
	fooName           = TypeName[*Foo]()
	anotherFooName    = TypeName[*AnotherFoo]()
	barName           = TypeName[*Bar]()
	bazName           = TypeName[*Baz]()
	quxName           = TypeName[*Qux]()
	fooBarName        = TypeName[*FooBar]()
	fooBarQuxName     = TypeName[*FooBarQux]()
	fooInterfaceName  = TypeName[FooInterface]()
	barInterfaceName  = TypeName[BarInterface]()
	needsUnlinkedName = TypeName[*NeedsUnlinked]()
)
