package envflag

import (
	"testing"

	"github.com/go-quicktest/qt"
)

type evalFlags struct {
	Strict        bool
	OverloadOrder bool

	Sharing bool `envflag:"default:true"`
	LogEval int  `envflag:"default:0"`
}

type namedFlags struct {
	Registry string `envflag:"default:process"`
	MaxArity int    `envflag:"default:4"`
}

type retiredFlags struct {
	Recurse bool `envflag:"deprecated"`
	Sorted  bool `envflag:"deprecated,default:true"`
}

func TestParse(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		var f evalFlags
		qt.Assert(t, qt.IsNil(Parse(&f, "")))
		qt.Check(t, qt.Equals(f, evalFlags{Sharing: true}))
	})
	t.Run("JustCommas", func(t *testing.T) {
		var f evalFlags
		qt.Assert(t, qt.IsNil(Parse(&f, ",,")))
		qt.Check(t, qt.Equals(f, evalFlags{Sharing: true}))
	})
	t.Run("BareBoolAndInt", func(t *testing.T) {
		var f evalFlags
		qt.Assert(t, qt.IsNil(Parse(&f, "strict,logeval=2,sharing=0")))
		qt.Check(t, qt.Equals(f, evalFlags{Strict: true, LogEval: 2}))
	})
	t.Run("CaseInsensitive", func(t *testing.T) {
		var f evalFlags
		qt.Assert(t, qt.IsNil(Parse(&f, "OverloadOrder")))
		qt.Check(t, qt.IsTrue(f.OverloadOrder))
	})
	t.Run("Unknown", func(t *testing.T) {
		var f evalFlags
		err := Parse(&f, "strict,ratchet,other")
		qt.Check(t, qt.ErrorMatches(err, "unknown flag \"ratchet\"\nunknown flag \"other\""))
		qt.Check(t, qt.IsTrue(f.Strict))
	})
	t.Run("InvalidBool", func(t *testing.T) {
		var f evalFlags
		qt.Check(t, qt.ErrorIs(Parse(&f, "strict=2"), ErrInvalid))
	})
	t.Run("InvalidInt", func(t *testing.T) {
		var f namedFlags
		qt.Check(t, qt.ErrorIs(Parse(&f, "maxarity="), ErrInvalid))
		qt.Check(t, qt.Equals(f, namedFlags{Registry: "process", MaxArity: 4}))
	})
	t.Run("StringNeedsValue", func(t *testing.T) {
		var f namedFlags
		err := Parse(&f, "registry")
		qt.Check(t, qt.ErrorMatches(err, `value needed for string flag "registry"`))
	})
	t.Run("StringValue", func(t *testing.T) {
		var f namedFlags
		qt.Assert(t, qt.IsNil(Parse(&f, "registry=private,maxarity=3")))
		qt.Check(t, qt.Equals(f, namedFlags{Registry: "private", MaxArity: 3}))
	})
	t.Run("Deprecated", func(t *testing.T) {
		var f retiredFlags
		qt.Check(t, qt.IsNil(Parse(&f, "recurse=false,sorted=1")))
		err := Parse(&f, "sorted=0")
		qt.Check(t, qt.ErrorMatches(err, `cannot change default value of deprecated flag "sorted"`))
	})
}

func TestInit(t *testing.T) {
	t.Setenv("TEST_VAR", "strict,bogus")
	var f evalFlags
	err := Init(&f, "TEST_VAR")
	qt.Check(t, qt.ErrorMatches(err, `cannot parse TEST_VAR: unknown flag "bogus"`))
}
