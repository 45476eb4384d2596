// Package interpose rewrites every access to selected storage maps into
// calls through generated wrapper libraries.
package interpose

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/tliron/commonlog"
	"golang.org/x/xerrors"

	"mapshim/internal/ast"
	"mapshim/internal/errors"
	"mapshim/internal/instrument"
	"mapshim/internal/maplib"
	"mapshim/internal/naming"
	"mapshim/internal/semantic"
)

var log = commonlog.GetLogger("mapshim.interpose")

type interposer struct {
	ctx      *instrument.Context
	units    []*ast.SourceUnit
	analyzer *semantic.Analyzer

	locations []*location
	roots     map[*ast.VariableDecl]*location
	members   map[string]map[*ast.StructDef]*location

	rewritten *bitset.BitSet
	consumed  map[*ast.Identifier]bool
	unchecked bool
	locals    *naming.Scope // temporaries of the function being rewritten
	sites     int
}

// Interpose rewrites units in place so every access to the maps named by
// targets goes through libraries generated into ctx.Aux. Public targets
// get an explicit getter with the signature of the one the compiler
// generated. On error the units may be partially rewritten and must be
// discarded.
func Interpose(ctx *instrument.Context, targets []Target, units []*ast.SourceUnit) error {
	ip := &interposer{
		ctx:       ctx,
		units:     units,
		analyzer:  semantic.NewAnalyzer(),
		roots:     make(map[*ast.VariableDecl]*location),
		members:   make(map[string]map[*ast.StructDef]*location),
		rewritten: bitset.New(uint(len(ctx.Tracker.GetAllMetadata()))),
		consumed:  make(map[*ast.Identifier]bool),
	}

	for _, diagnostic := range ip.analyzer.Analyze(units) {
		if diagnostic.Level == errors.Error {
			return diagnostic
		}
		log.Debugf("%s", diagnostic.Message)
	}

	for _, target := range targets {
		loc, err := ip.resolve(target)
		if err != nil {
			return err
		}
		if err := ip.add(loc); err != nil {
			return err
		}
	}

	for _, loc := range ip.locations {
		if err := ip.provision(loc); err != nil {
			return err
		}
	}

	for _, unit := range units {
		for _, c := range unit.Contracts() {
			if err := ip.contract(c); err != nil {
				return err
			}
		}
	}

	if err := ip.regenerateGetters(); err != nil {
		return err
	}
	if err := ip.checkConsumed(); err != nil {
		return err
	}

	// type names change last, since typing struct members reads them
	for _, loc := range ip.locations {
		set, err := loc.typeSlot()
		if err != nil {
			return err
		}
		set(loc.lib.StructType())
	}

	log.Debugf("interposed %d maps at %d sites", len(ip.locations), ip.sites)
	return nil
}

// add registers a location. Targets naming a map already wrapped by
// another target are dropped; overlapping targets on one declaration that
// are not nested levels of each other cannot both be interposed.
func (ip *interposer) add(loc *location) error {
	for i, other := range ip.locations {
		if other.decl != loc.decl {
			continue
		}
		switch {
		case other.covers(loc):
			log.Debugf("%s is covered by %s", loc.target, other.target)
			return nil
		case loc.covers(other):
			log.Debugf("%s is covered by %s", other.target, loc.target)
			ip.locations[i] = loc
			ip.index(loc)
			return nil
		default:
			return &errors.ResolutionError{
				Target:   loc.target.String(),
				Message:  "overlaps target " + other.target.String(),
				Position: loc.decl.Pos,
			}
		}
	}
	ip.locations = append(ip.locations, loc)
	ip.index(loc)
	return nil
}

func (ip *interposer) index(loc *location) {
	if loc.owner == nil {
		ip.roots[loc.decl] = loc
		return
	}
	name := loc.decl.Name.Value
	if ip.members[name] == nil {
		ip.members[name] = make(map[*ast.StructDef]*location)
	}
	ip.members[name][loc.owner] = loc
}

func (ip *interposer) provision(loc *location) error {
	lib, err := maplib.Obtain(ip.ctx, loc.mapping.Key, loc.mapping.Value)
	if err != nil {
		var unsupported *errors.UnsupportedTypeError
		if xerrors.As(err, &unsupported) && unsupported.Position == (ast.Position{}) {
			unsupported.Position = loc.decl.Pos
		}
		return err
	}
	loc.lib = lib
	log.Debugf("%s uses %s", loc.target, lib.Name)
	return nil
}

// checkConsumed rejects any remaining reference to a located state
// variable that no rewrite accounted for
func (ip *interposer) checkConsumed() error {
	var err error
	for _, unit := range ip.units {
		ast.Inspect(unit, func(n ast.Node) bool {
			if err != nil {
				return false
			}
			id, ok := n.(*ast.Identifier)
			if !ok || ip.consumed[id] {
				return true
			}
			if v, ok := id.Decl.(*ast.VariableDecl); ok {
				if loc := ip.roots[v]; loc != nil {
					err = &errors.ConsistencyError{
						Message:  "reference to map " + loc.target.String() + " is not interposed",
						Position: id.Pos,
						Length:   span(id),
					}
				}
			}
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}
