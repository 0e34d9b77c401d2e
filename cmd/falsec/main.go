// This is the main-driver for our compiler.

package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kylelemons/godebug/pretty"
	"github.com/pborman/getopt/v2"

	"github.com/false-lang/falsec/compiler"
)

func main() {

	//
	// Look for flags.
	//
	var debug, compileFlag, run, printAST bool
	emitLLVM := true

	getopt.BoolVarLong(&debug, "debug", 0, "Insert debug \"stuff\" in our generated output.")
	getopt.BoolVarLong(&emitLLVM, "emit-llvm", 0, "Write the generated .ll text (default behavior).")
	getopt.BoolVarLong(&compileFlag, "compile", 0, "Compile the program, via invoking llc and cc.")
	getopt.BoolVarLong(&run, "run", 0, "Run the binary, post-compile.")
	getopt.BoolVarLong(&printAST, "print-ast", 0, "Print the parsed AST to standard output.")
	getopt.Parse()

	args := getopt.Args()

	//
	// If we're running we're also compiling.
	//
	if run {
		compileFlag = true
	}

	//
	// Ensure we have an input filename.
	//
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Filename required")
		os.Exit(1)
	}

	input := args[0]
	output := ""
	if len(args) > 1 {
		output = args[1]
	} else {
		output = deriveOutputName(input)
	}

	src, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %s\n", input, err)
		os.Exit(1)
	}

	//
	// Create a compiler-object, with the program as input.
	//
	comp := compiler.New(string(src))

	//
	// Are we inserting debugging "stuff" ?
	//
	if debug {
		comp.SetDebug(true)
	}

	tree, err := comp.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing: %s\n", err)
		os.Exit(1)
	}
	fmt.Println("Parsed AST")

	if printAST {
		fmt.Println(pretty.Sprint(tree))
	}

	//
	// Compile to LLVM IR.
	//
	out, err := comp.Compile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling: %s\n", err)
		os.Exit(1)
	}

	if emitLLVM || !compileFlag {
		if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %s\n", output, err)
			os.Exit(1)
		}
	}
	fmt.Printf("Compiled to %s\n", output)

	if !compileFlag {
		return
	}

	//
	// OK we're compiling the program, via llc then cc.
	//
	binary := strings.TrimSuffix(output, filepath.Ext(output))

	llc := exec.Command("llc", "-filetype=asm", "-o", "-", output)
	llc.Stderr = os.Stderr

	asm, err := llc.Output()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error launching llc: %s\n", err)
		os.Exit(1)
	}

	cc := exec.Command("cc", "-o", binary, "-x", "assembler", "-")
	cc.Stdout = os.Stdout
	cc.Stderr = os.Stderr

	var b bytes.Buffer
	b.Write(asm)
	cc.Stdin = &b

	if err := cc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error launching cc: %s\n", err)
		os.Exit(1)
	}

	//
	// Running the binary too?
	//
	if run {
		exe := exec.Command(binary)
		exe.Stdout = os.Stdout
		exe.Stderr = os.Stderr
		exe.Stdin = os.Stdin
		if err := exe.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error launching %s: %s\n", binary, err)
			os.Exit(1)
		}
	}
}

// deriveOutputName strips the first extension from the input filename
// and appends .ll, per spec.md §6.
func deriveOutputName(input string) string {
	base := filepath.Base(input)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	dir := filepath.Dir(input)
	if dir == "." {
		return base + ".ll"
	}
	return filepath.Join(dir, base+".ll")
}
