package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

type symbols []symbol

type symbol struct {
	addr  int
	label string
}

func (s symbol) String() string { return fmt.Sprintf("%s (%d)", s.label, s.addr) }

// defaultSymbols name the cells that puzzle programs conventionally use for
// their inputs and result.
var defaultSymbols = symbols{
	{0, "result"},
	{1, "noun"},
	{2, "verb"},
}

func (s symbols) forAddr(addr int) (ss []symbol) {
	i := sort.Search(len(s), func(i int) bool { return s[i].addr >= addr })
	for ; i < len(s); i++ {
		if s[i].addr != addr {
			break
		}
		ss = append(ss, s[i])
	}
	return ss
}

func (s symbols) withLabelPrefix(p string) (ss []symbol) {
	for _, sym := range s {
		if strings.HasPrefix(sym.label, p) {
			ss = append(ss, sym)
		}
	}
	return ss
}

// resolve returns the symbol for arg, which is either a label or a decimal
// address.
func (s symbols) resolve(arg string) (symbol, bool) {
	for _, sym := range s {
		if sym.label == arg {
			return sym, true
		}
	}
	addr, err := strconv.Atoi(arg)
	if err != nil || addr < 0 {
		return symbol{}, false
	}
	if ss := s.forAddr(addr); len(ss) > 0 {
		return ss[0], true
	}
	return symbol{addr: addr, label: arg}, true
}

// loadSymbols returns the default symbols merged with those in symFile, if
// it exists. Each line of symFile is an address and a label separated by
// white space; blank lines and lines starting with # are ignored.
func loadSymbols(symFile string) (symbols, error) {
	ss := append(symbols(nil), defaultSymbols...)
	f, err := os.Open(symFile)
	if os.IsNotExist(err) {
		return ss, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: want address and label, got %q", symFile, n, line)
		}
		addr, err := strconv.Atoi(fields[0])
		if err != nil || addr < 0 {
			return nil, fmt.Errorf("%s:%d: invalid address %q", symFile, n, fields[0])
		}
		ss = append(ss, symbol{addr: addr, label: fields[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].addr < ss[j].addr
	})
	return ss, nil
}
