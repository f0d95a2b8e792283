package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates available to $() expressions.
var sysEquate = map[string]uint32{
	"REGISTER_COUNT": REGISTER_COUNT,
	"MEMORY_SIZE":    MEMORY_SIZE,
	"CODE_STRIDE":    CODE_STRIDE,
}

// Assembler decodes statement text into a Program. Decode is atomic: the
// first error in source order aborts, and no Program is produced.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of decoded statements.

	predefine map[string]uint32 // Caller-installed equates.
	Equate    map[string]uint32 // Equates visible to $() expressions.
}

// Predefine installs an equate, or redefines an existing one, for use in
// $() expressions.
func (asm *Assembler) Predefine(equ string, value uint32) {
	if asm.predefine == nil {
		asm.predefine = map[string]uint32{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, val := range asm.Equate {
		pred[key] = starlark.MakeInt(int(val))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// expand replaces every $(...) in the text with its decimal value.
func (asm *Assembler) expand(text string) (out string, err error) {
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	out = re.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	return
}

// parseArg decodes one operand token against its expected kind, returning
// the operand field value.
func (asm *Assembler) parseArg(kind ArgKind, word string) (value uint16, err error) {
	switch kind {
	case ARG_REG, ARG_MEM:
		prefix := "R"
		limit := uint64(REGISTER_COUNT)
		if kind == ARG_MEM {
			prefix = "M"
			limit = MEMORY_SIZE
		}
		if !strings.HasPrefix(word, prefix) {
			err = ErrOperandInvalid
			return
		}
		index, perr := strconv.ParseUint(word[1:], 10, 16)
		if perr != nil {
			err = ErrOperandInvalid
			return
		}
		if index >= limit {
			err = ErrOperandOutOfRange
			return
		}
		value = uint16(index)
	case ARG_IMM, ARG_ADDR:
		v64, perr := strconv.ParseUint(word, 10, 32)
		if perr != nil {
			err = errors.Join(ErrOperandInvalid, ErrParseNumber(word))
			return
		}
		limit := uint64(ARG_MASK)
		if kind == ARG_IMM {
			limit = 0xff
		}
		if v64 > limit {
			err = ErrOperandOutOfRange
			return
		}
		value = uint16(v64)
	}

	return
}

// parseStatement decodes one statement against the opcode table and appends
// it to the statement list.
func (asm *Assembler) parseStatement(stmt string, lineno int) (err error) {
	words := strings.Fields(stmt)

	candidates, ok := mnemonicTable[words[0]]
	if !ok {
		return ErrInstructionUnknown
	}

	args := words[1:]

	var code Code
	matched := false
	for _, op := range candidates {
		spec := opTable[op]
		if spec.Arity() != len(args) {
			if err == nil {
				err = ErrOperandInvalid
			}
			continue
		}

		var vals [2]uint16
		formErr := error(nil)
		for n, kind := range spec.Args {
			if kind == ARG_NONE {
				continue
			}
			var val uint16
			val, formErr = asm.parseArg(kind, args[n])
			if formErr != nil {
				break
			}
			vals[n] = val
		}
		if formErr != nil {
			// Out-of-range beats kind mismatch when several forms fail.
			if err == nil || errors.Is(formErr, ErrOperandOutOfRange) {
				err = formErr
			}
			continue
		}

		code = MakeCode(op, vals[0], vals[1])
		matched = true
		break
	}
	if !matched {
		return
	}
	err = nil

	asm.Statement = append(asm.Statement, Statement{
		LineNo: lineno,
		Addr:   uint32(len(asm.Statement)) * CODE_STRIDE,
		Text:   stmt,
		Code:   code,
	})

	return
}

// Parse decodes an input stream into a Program. Statements are terminated
// by ';' and must be complete on one line; '//' starts a line comment.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Statement = asm.Statement[:0]
	asm.Equate = maps.Clone(sysEquate)
	for equ, val := range asm.predefine {
		asm.Equate[equ] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text, _, _ = strings.Cut(text, "//")
		line = strings.TrimSpace(text)

		text, err = asm.expand(text)
		if err != nil {
			return
		}

		rest := text
		for {
			var stmt string
			var found bool
			stmt, rest, found = strings.Cut(rest, ";")
			stmt = strings.TrimSpace(stmt)
			if !found {
				if len(stmt) != 0 {
					line = stmt
					err = ErrStatementMalformed
					return
				}
				break
			}
			if len(stmt) == 0 {
				continue
			}

			line = stmt
			err = asm.parseStatement(stmt, lineno)
			if err != nil {
				return
			}
		}
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
	}

	return
}
