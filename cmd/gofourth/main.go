package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	fourth "github.com/jcorbin/gofourth"
)

func main() {
	var (
		timeout   time.Duration
		trace     bool
		dis       bool
		maxInputs int
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dis, "dis", false, "print a disassembly before running")
	flag.IntVar(&maxInputs, "max-inputs", 0, "cap on stack inputs a program may require (negative for no cap)")
	flag.Parse()

	source := strings.Join(flag.Args(), " ")
	if source == "" {
		sc := bufio.NewScanner(os.Stdin)
		var lines []string
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		if err := sc.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
			os.Exit(1)
		}
		source = strings.Join(lines, " ")
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c := fourth.NewCompiler()
	c.SetMaxInputs(maxInputs)
	if trace {
		c.SetLogf(log.Printf)
	}
	if err := c.Parse(source, true); err != nil {
		die(source, err)
	}
	word, err := c.Finish()
	if err != nil {
		die(source, err)
	}

	fmt.Printf("stack effect %v\n", word.StackEffect())
	if dis {
		refs, err := fourth.Disassemble(word)
		if err != nil {
			die(source, err)
		}
		parts := make([]string, len(refs))
		for i, r := range refs {
			parts[i] = r.String()
		}
		fmt.Printf("disassembly: %v\n", strings.Join(parts, " "))
	}

	var opts []fourth.RunOption
	if trace {
		opts = append(opts, fourth.WithLogf(log.Printf))
	}
	result, err := fourth.Run(ctx, word, opts...)
	if err != nil {
		die(source, err)
	}
	fmt.Printf("-> %v\n", result)
}

func die(source string, err error) {
	if off, ok := fourth.SourceOffset(err); ok {
		fmt.Fprintf(os.Stderr, "  %s\n  %*s^\n", source, off, "")
	}
	fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
	os.Exit(1)
}
