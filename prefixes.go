package serd

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PrefixTable is the shape of a bulk prefix declaration file: a flat
// mapping of prefix name to absolute URI, the form a prefix.cc export
// or a project's shared namespace file naturally takes.
type PrefixTable map[string]string

// LoadPrefixes decodes a YAML document of name->URI pairs from r and
// feeds every pair through env.SetPrefix, returning the first error
// encountered (with the offending prefix name attached for context).
// This is the bulk-loading counterpart to the one-at-a-time
// Env.SetPrefix, for callers that keep a shared namespace table
// instead of declaring every prefix inline in each document.
func LoadPrefixes(r io.Reader, env *Env) error {
	var table PrefixTable
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&table); err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.Wrap(err, "load prefixes: invalid YAML")
	}
	// Iterate in sorted order so loading the same file twice produces
	// identical error messages and, when no conflicting rebind occurs,
	// identical Env.Names() ordering.
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := env.SetPrefix(name, table[name]); err != nil {
			return errors.Wrapf(err, "load prefixes: prefix %q", name)
		}
	}
	return nil
}

// DumpPrefixes encodes env's bound prefixes as a YAML document of
// name->URI pairs to w, in lexical order, the counterpart to
// LoadPrefixes for checkpointing a namespace table built up over a
// session.
func DumpPrefixes(w io.Writer, env *Env) error {
	table := make(PrefixTable, len(env.order))
	for _, name := range env.SortedNames() {
		uri, _ := env.Lookup(name)
		table[name] = uri
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(table); err != nil {
		return errors.Wrap(err, "dump prefixes: encode failed")
	}
	return errors.Wrap(enc.Close(), "dump prefixes: close failed")
}
