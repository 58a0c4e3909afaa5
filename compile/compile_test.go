// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/why-lang/why/check"
	"github.com/why-lang/why/exec"
	"github.com/why-lang/why/memory"
	"github.com/why-lang/why/symbols"
)

// compileAndRun compiles source text and executes the image, returning
// the VM and everything the program printed.
func compileAndRun(t *testing.T, src string) (*exec.VM, string) {
	t.Helper()
	image, err := ProcessSource(src)
	require.NoError(t, err)

	vm := exec.NewVM(image)
	var out bytes.Buffer
	vm.SetOutput(&out)
	require.NoError(t, vm.Run())
	return vm, out.String()
}

func TestBooleanAlgebra(t *testing.T) {
	src := `block
    bool a = true
    bool b = false
    bool c = a & !b
    viewmem c
`
	vm, out := compileAndRun(t, src)
	assert.Equal(t, "FF\n", out)
	assert.Equal(t, 0, vm.StackLevel())
}

func TestIntegerAddCarry(t *testing.T) {
	src := `block
    ptr x = 255
    ptr y = 1
    ptr z = x + y
    viewmemdec z
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "256\n", out)
}

func TestIfElifElse(t *testing.T) {
	src := `block
    ptr n = 2
    if n == 1
        viewmemdec n
    elif n == 2
        viewmemdec n
    else
        viewmemdec 0
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "2\n", out)
}

func TestIfElseTakesElse(t *testing.T) {
	src := `block
    ptr n = 7
    if n == 1
        viewmemdec 1
    else
        viewmemdec 0
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "0\n", out)
}

func TestWhileWithBreak(t *testing.T) {
	src := `block
    ptr n = 1
    while n != 4
        viewmemdec n
        if n == 3
            break
        n += 1
`
	vm, out := compileAndRun(t, src)
	assert.Equal(t, "1\n2\n3\n", out)
	assert.Equal(t, 0, vm.StackLevel())
}

func TestWhileContinueSkipsTail(t *testing.T) {
	src := `block
    ptr n = 0
    ptr hits = 0
    while n != 3
        n += 1
        if n == 2
            continue
        hits += 1
    viewmemdec hits
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "2\n", out)
}

func TestFunctionCallWithReturn(t *testing.T) {
	src := `block
    fn add(ptr a, ptr b) ptr 0
        return = a + b
    ptr r = add(40, 2)
    viewmemdec r
`
	vm, out := compileAndRun(t, src)
	assert.Equal(t, "42\n", out)
	assert.Equal(t, 0, vm.StackLevel())
}

func TestFunctionDefaultReturnValue(t *testing.T) {
	src := `block
    fn nothing(ptr a) ptr 9
        ptr unused = a
    ptr r = nothing(1)
    viewmemdec r
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "9\n", out)
}

func TestFunctionArgumentsAreCopied(t *testing.T) {
	src := `block
    fn bump(ptr v) ptr 0
        v += 1
        return = v
    ptr x = 10
    ptr r = bump(x)
    viewmemdec r
    viewmemdec x
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "11\n10\n", out)
}

func TestRecursiveFunction(t *testing.T) {
	src := `block
    fn countdown(ptr n) ptr 0
        if n == 0
            return = 0
        if n != 0
            ptr rest = countdown(0)
        return = n
    ptr r = countdown(5)
    viewmemdec r
`
	vm, out := compileAndRun(t, src)
	assert.Equal(t, "5\n", out)
	assert.Equal(t, 0, vm.StackLevel())
}

func TestRoundTripPersistence(t *testing.T) {
	src := `block
    bool a = true
    bool b = false
    bool c = a & !b
    viewmem c
`
	image, err := ProcessSource(src)
	require.NoError(t, err)

	name, err := image.Save(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	loaded, err := memory.LoadImage(name)
	require.NoError(t, err)
	require.Equal(t, image.Bytes(), loaded.Bytes())

	vm := exec.NewVM(loaded)
	var out bytes.Buffer
	vm.SetOutput(&out)
	require.NoError(t, vm.Run())
	assert.Equal(t, "FF\n", out.String())
}

func TestCharArrayIndexing(t *testing.T) {
	src := `block
    char s[5] = "hello"
    ptr i = 1
    viewmem s[i]
    s[0] = 'y'
    viewmem s[0]
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "65\n79\n", out, "'e' then 'y' in hex")
}

func TestCharArrayNoneInitialisesToZero(t *testing.T) {
	src := `block
    char s[3] = none
    viewmem s[2]
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "00\n", out)
}

func TestClassMembers(t *testing.T) {
	src := `block
    class point
        ptr x = 7
    viewmemdec point.x
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "7\n", out)
}

func TestClassFunctionMember(t *testing.T) {
	src := `block
    class math
        fn double(ptr v) ptr 0
            return = v + v
    ptr r = math.double(21)
    viewmemdec r
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "42\n", out)
}

func TestHeapAllocAndFreeLines(t *testing.T) {
	src := `block
    ptr h = 0
    heapalloc h 16
    viewmemdec h
    heapfree h
`
	vm, out := compileAndRun(t, src)
	assert.Equal(t, "0\n", out)
	assert.Equal(t, 0, vm.Memory().Heap().Len())
}

func TestCharEquality(t *testing.T) {
	src := `block
    char a = 'x'
    char b = 'x'
    bool same = a == b
    viewmem same
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "FF\n", out)
}

func TestCompoundAssigners(t *testing.T) {
	src := `block
    ptr n = 40
    n += 2
    viewmemdec n
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "42\n", out)
}

func TestDumpInstruction(t *testing.T) {
	src := `block
    ptr n = 1
    dump
`
	image, err := ProcessSource(src)
	require.NoError(t, err)

	vm := exec.NewVM(image)
	dir := t.TempDir()
	vm.SetDumpDir(dir)
	require.NoError(t, vm.Run())
	assert.FileExists(t, filepath.Join(dir, "program.bin"))
	assert.FileExists(t, filepath.Join(dir, "stack-0.bin"))
}

// Forward-patch completeness: after compilation no jump may still hold a
// placeholder destination.
func TestForwardPatchCompleteness(t *testing.T) {
	srcs := []string{
		`block
    ptr n = 2
    if n == 1
        viewmemdec n
    elif n == 2
        viewmemdec n
    else
        viewmemdec 0
`,
		`block
    ptr n = 1
    while n != 4
        if n == 3
            break
        n += 1
`,
		`block
    fn add(ptr a, ptr b) ptr 0
        return = a + b
    ptr r = add(40, 2)
`,
	}
	for _, src := range srcs {
		image, err := ProcessSource(src)
		require.NoError(t, err)
		assert.NoError(t, check.VerifyImage(image.Bytes()))
	}
}

// Reference depth limit: a function body cannot see the caller's locals,
// but functions and classes above remain in scope.
func TestReferenceDepthLimit(t *testing.T) {
	_, err := ProcessSource(`block
    ptr x = 1
    fn f(ptr a) ptr 0
        return = x
    ptr r = f(1)
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'x' not found")

	// Functions declared above the body stay visible.
	_, err = ProcessSource(`block
    fn one(ptr a) ptr 1
        ptr unused = a
    fn two(ptr a) ptr 0
        return = one(a)
    ptr r = two(3)
`)
	assert.NoError(t, err)
}

func TestRefStackDepthLimit(t *testing.T) {
	refs := NewRefStack()
	v, err := NewType(symbols.TypePointer)
	require.NoError(t, err)
	require.NoError(t, refs.Register(VariableRef{Type: v}, []string{"x"}))
	require.NoError(t, refs.Register(FunctionBinding{Func: &FuncRef{}}, []string{"f"}))

	refs.Push()
	refs.SetDepthLimit(1)

	_, err = refs.Variable([]string{"x"})
	assert.Error(t, err, "variables below the limit are hidden")
	_, err = refs.Function([]string{"f"})
	assert.NoError(t, err, "functions below the limit stay visible")
}

func TestDuplicateReference(t *testing.T) {
	_, err := ProcessSource(`block
    ptr x = 1
    ptr x = 2
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"indentation too high", "block\n        ptr x = 1\n"},
		{"unknown reference", "block\n    x = 1\n"},
		{"unmatched line", "block\n    , ,\n"},
		{"break outside loop", "block\n    break\n"},
		{"operator mismatch", "block\n    bool b = true\n    ptr p = 1\n    bool c = b & p\n"},
		{"literal out of range", "block\n    char c = 256\n"},
		{"condition must be boolean", "block\n    if 1\n        viewmemdec 1\n"},
		{"wrong arity", "block\n    fn f(ptr a) ptr 0\n        return = a\n    ptr r = f(1, 2)\n"},
		{"elif without if", "block\n    elif true\n        viewmemdec 1\n"},
	}
	for _, c := range cases {
		_, err := ProcessSource(c.src)
		assert.Error(t, err, c.name)
	}
}

func TestErrorsCarryLineNumbers(t *testing.T) {
	_, err := ProcessSource("block\n    ptr x = 1\n    y = 2\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestNestedBaseBlocks(t *testing.T) {
	src := `block
    viewmemdec 1
    block
        viewmemdec 2
    viewmemdec 3
`
	vm, out := compileAndRun(t, src)
	assert.Equal(t, "1\n2\n3\n", out)
	assert.Equal(t, 0, vm.StackLevel())
}

func TestIntAndPtrInteroperate(t *testing.T) {
	src := `block
    int a = 40
    ptr b = 2
    ptr c = a + b
    viewmemdec c
`
	_, out := compileAndRun(t, src)
	assert.Equal(t, "42\n", out)
}
