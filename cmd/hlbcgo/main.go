// hlbcgo decompiles the classes of a HashLink bytecode module back into
// readable Haxe-like source, or browses a module interactively. Reading
// .hl files is not implemented (see loadModule), so every run that names
// a -file stops with a load error.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"hlbcgo/internal/decompiler"
	"hlbcgo/internal/hlbytecode"
	"hlbcgo/internal/inspector"
	"hlbcgo/internal/printer"
)

const version = "0.1.0"

// printUsage displays custom usage information.
func printUsage() {
	_, _ = fmt.Fprintf(os.Stderr, `hlbcgo v%s

USAGE:
    %s -file <path> [OPTIONS]

DESCRIPTION:
    hlbcgo lifts HashLink bytecode (.hl) functions and classes into
    Haxe-like source text. Without -all or -browse, it prints the
    single class named by -class. Reading .hl files is not
    implemented: loading any -file reports an error.

OPTIONS:
    -file, -f <path>        HashLink bytecode file to load
    -class, -c <name>       Decompile only the named class
    -all, -a                Decompile every class in the module
    -workers, -w <n>        Worker pool size for -all (default 4)
    -debug, -d              Comment unknown opcodes inline
    -browse, -b             Open the interactive module browser
    -version, -v            Show version information
    -help, -h                Show this help message

EXAMPLES:
    %s -file hlboot.dat -class Main
    %s -file hlboot.dat -all -workers 8
    %s -file hlboot.dat -browse

`, version, os.Args[0], os.Args[0], os.Args[0], os.Args[0])
}

func main() {
	flag.Usage = printUsage

	fileFlag := flag.String("file", "", "HashLink bytecode file to load")
	classFlag := flag.String("class", "", "Decompile only the named class")
	allFlag := flag.Bool("all", false, "Decompile every class in the module")
	workersFlag := flag.Int("workers", 4, "Worker pool size for -all")
	debugFlag := flag.Bool("debug", false, "Comment unknown opcodes inline")
	browseFlag := flag.Bool("browse", false, "Open the interactive module browser")
	versionFlag := flag.Bool("version", false, "Show version information")

	flag.StringVar(fileFlag, "f", "", "HashLink bytecode file to load")
	flag.StringVar(classFlag, "c", "", "Decompile only the named class")
	flag.BoolVar(allFlag, "a", false, "Decompile every class in the module")
	flag.IntVar(workersFlag, "w", 4, "Worker pool size for -all")
	flag.BoolVar(debugFlag, "d", false, "Comment unknown opcodes inline")
	flag.BoolVar(browseFlag, "b", false, "Open the interactive module browser")
	flag.BoolVar(versionFlag, "v", false, "Show version information")

	flag.Parse()

	if *versionFlag {
		fmt.Printf("hlbcgo v%s\n", version)
		return
	}

	if *fileFlag == "" {
		printUsage()
		os.Exit(1)
	}

	mod, err := loadModule(*fileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading %s: %s\n", *fileFlag, err)
		os.Exit(1)
	}

	diag := stderrDiagnostics{}
	opts := decompiler.Options{CommentUnknownOpcodes: *debugFlag}

	switch {
	case *browseFlag:
		classes, objs := inspector.BuildClasses(mod, diag, opts)
		if err := inspector.Run(inspector.New(mod, classes, objs)); err != nil {
			fmt.Fprintf(os.Stderr, "browser error: %s\n", err)
			os.Exit(1)
		}
	case *allFlag:
		decompileAll(mod, diag, opts, *workersFlag)
	case *classFlag != "":
		decompileOne(mod, diag, opts, *classFlag)
	default:
		printUsage()
		os.Exit(1)
	}
}

// decompileOne finds a single Obj/Struct type by name and prints its
// decompiled class body.
func decompileOne(mod *hlbytecode.Module, diag decompiler.Diagnostics, opts decompiler.Options, name string) {
	for _, t := range mod.Types {
		obj, ok := asTypeObj(t)
		if !ok || obj.Name.Resolve(mod) != name {
			continue
		}
		cls := decompiler.DecompileClass(mod, obj, diag, opts)
		fmt.Print(printer.Class(cls))
		return
	}
	fmt.Fprintf(os.Stderr, "no such class: %s\n", name)
	os.Exit(1)
}

// decompileAll lifts every class in the module using a bounded worker
// pool, the way the rest of the corpus reaches for stdlib sync and
// channels directly rather than a goroutine-pool framework.
func decompileAll(mod *hlbytecode.Module, diag decompiler.Diagnostics, opts decompiler.Options, workers int) {
	if workers < 1 {
		workers = 1
	}

	var objs []*hlbytecode.TypeObj
	for _, t := range mod.Types {
		if obj, ok := asTypeObj(t); ok {
			objs = append(objs, obj)
		}
	}

	results := make([]string, len(objs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				cls := decompiler.DecompileClass(mod, objs[i], diag, opts)
				results[i] = printer.Class(cls)
			}
		}()
	}

	for i := range objs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, src := range results {
		fmt.Print(src)
	}
}

func asTypeObj(t hlbytecode.Type) (*hlbytecode.TypeObj, bool) {
	switch v := t.(type) {
	case hlbytecode.TObj:
		return v.Def, true
	case hlbytecode.TStruct:
		return v.Def, true
	}
	return nil, false
}

type stderrDiagnostics struct{}

func (stderrDiagnostics) Printf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
