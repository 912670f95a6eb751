package engine

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/chazu/swarf/pkg/graph"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms swarf Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: circle-profile -> circle_profile
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus
		// operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a 3D vector.
type sexpVec3 struct {
	vec vec3.T
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec[0], v.vec[1], v.vec[2])
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpVec2 wraps a 2D vector.
type sexpVec2 struct {
	vec vec2.T
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %.1f %.1f)", v.vec[0], v.vec[1])
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

// sexpProfile wraps a 2D cross-section spec so it can be returned from
// circle-profile / rect-profile and consumed by sweep and draft-extrude.
type sexpProfile struct {
	spec graph.ProfileSpec
}

func (p *sexpProfile) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s-profile)", p.spec.Kind)
}
func (p *sexpProfile) Type() *zygo.RegisteredType { return nil }

// sexpRing wraps a 3D cross-section spec for loft.
type sexpRing struct {
	spec graph.RingSpec
}

func (r *sexpRing) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s-ring)", r.spec.Kind)
}
func (r *sexpRing) Type() *zygo.RegisteredType { return nil }

// sexpPath wraps a path spec so it can be returned from line-path /
// curve-path and consumed by the sweep forms.
type sexpPath struct {
	spec graph.PathSpec
}

func (p *sexpPath) SexpString(ps *zygo.PrintState) string {
	if p.spec.Kind == graph.PathLine {
		return "(line-path)"
	}
	return "(curve-path)"
}
func (p *sexpPath) Type() *zygo.RegisteredType { return nil }

// sexpShape wraps a geometry payload produced by a shape builtin and
// consumed by defpart.
type sexpShape struct {
	kind graph.NodeKind
	data graph.NodeData
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shape %s)", s.kind)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpNodeRef wraps a graph.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   graph.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value, treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_xz) and plain strings ("xz").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toVec3 extracts a vector from a sexpVec3.
func toVec3(s zygo.Sexp) (vec3.T, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return vec3.Zero, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toProfile extracts a ProfileSpec from a sexpProfile.
func toProfile(s zygo.Sexp) (graph.ProfileSpec, error) {
	if p, ok := s.(*sexpProfile); ok {
		return p.spec, nil
	}
	return graph.ProfileSpec{}, fmt.Errorf("expected profile, got %T (%s)", s, s.SexpString(nil))
}

// toRing extracts a RingSpec from a sexpRing.
func toRing(s zygo.Sexp) (graph.RingSpec, error) {
	if r, ok := s.(*sexpRing); ok {
		return r.spec, nil
	}
	return graph.RingSpec{}, fmt.Errorf("expected ring, got %T (%s)", s, s.SexpString(nil))
}

// toPath extracts a PathSpec from a sexpPath.
func toPath(s zygo.Sexp) (graph.PathSpec, error) {
	if p, ok := s.(*sexpPath); ok {
		return p.spec, nil
	}
	return graph.PathSpec{}, fmt.Errorf("expected path, got %T (%s)", s, s.SexpString(nil))
}

// toNodeRef extracts a NodeID from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (graph.NodeID, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref.id, nil
	}
	return "", fmt.Errorf("expected node reference, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// Keyword setters: each copies the keyword's value into dst when present,
// wrapping extraction errors with the form and keyword name.

func kwFloat(pa kwArgs, form, key string, dst *float64) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", form, key, err)
	}
	*dst = f
	return nil
}

func kwInt(pa kwArgs, form, key string, dst *int) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", form, key, err)
	}
	*dst = n
	return nil
}

func kwBool(pa kwArgs, form, key string, dst *bool) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	b, err := toBool(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", form, key, err)
	}
	*dst = b
	return nil
}

func kwVec3(pa kwArgs, form, key string, dst *vec3.T) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", form, key, err)
	}
	*dst = vec
	return nil
}

// ---------------------------------------------------------------------------
// Node ID generation
// ---------------------------------------------------------------------------

// nodeCounter provides unique suffixes for anonymous nodes.
var nodeCounter uint64

func nextNodeSuffix() string {
	n := atomic.AddUint64(&nodeCounter, 1)
	return fmt.Sprintf("_anon_%d", n)
}

// kindForData maps a shape payload to its node kind.
func kindForData(d graph.NodeData) graph.NodeKind {
	switch d.(type) {
	case graph.TorusData, graph.HelixData:
		return graph.NodePrimitive
	case graph.SweepData:
		return graph.NodeSweep
	case graph.LoftData:
		return graph.NodeLoft
	case graph.DraftBoxData, graph.DraftCylinderData, graph.DraftExtrudeData:
		return graph.NodeDraft
	default:
		return graph.NodeGroup
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all swarf DSL builtins into a zygomys
// environment. The builtins operate on the provided DesignGraph,
// populating it during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable string
// literals. Kebab-case form names are registered in underscore form for
// the same reason.
func registerBuiltins(env *zygo.Zlisp, g *graph.DesignGraph) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3) and (vec2 1 2)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var v vec3.T
		for i := 0; i < 3; i++ {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: component %d: %w", i, err)
			}
			v[i] = f
		}
		return &sexpVec3{vec: v}, nil
	})

	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		var v vec2.T
		for i := 0; i < 2; i++ {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec2: component %d: %w", i, err)
			}
			v[i] = f
		}
		return &sexpVec2{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (torus :major-radius 20 :minor-radius 5 :center (vec3 0 0 0)
	//        :major-segments 32 :minor-segments 16)
	// -----------------------------------------------------------------------
	env.AddFunction("torus", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		td := graph.TorusData{
			PrimKind:      graph.PrimTorus,
			MajorSegments: g.Defaults.TorusMajorSegments,
			MinorSegments: g.Defaults.TorusMinorSegments,
		}
		for _, err := range []error{
			kwFloat(pa, "torus", "major-radius", &td.MajorRadius),
			kwFloat(pa, "torus", "minor-radius", &td.MinorRadius),
			kwVec3(pa, "torus", "center", &td.Center),
			kwInt(pa, "torus", "major-segments", &td.MajorSegments),
			kwInt(pa, "torus", "minor-segments", &td.MinorSegments),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpShape{kind: graph.NodePrimitive, data: td}, nil
	})

	// -----------------------------------------------------------------------
	// (helix :radius 5 :pitch 2 :turns 3 :tube-radius 0.5
	//        :center (vec3 0 0 0) :segments 32 :tube-segments 8)
	// -----------------------------------------------------------------------
	env.AddFunction("helix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		hd := graph.HelixData{
			PrimKind:     graph.PrimHelix,
			Turns:        1,
			Segments:     g.Defaults.HelixSegments,
			TubeSegments: g.Defaults.HelixTubeSegments,
		}
		for _, err := range []error{
			kwFloat(pa, "helix", "radius", &hd.Radius),
			kwFloat(pa, "helix", "pitch", &hd.Pitch),
			kwFloat(pa, "helix", "turns", &hd.Turns),
			kwFloat(pa, "helix", "tube-radius", &hd.TubeRadius),
			kwVec3(pa, "helix", "center", &hd.Center),
			kwInt(pa, "helix", "segments", &hd.Segments),
			kwInt(pa, "helix", "tube-segments", &hd.TubeSegments),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpShape{kind: graph.NodePrimitive, data: hd}, nil
	})

	// -----------------------------------------------------------------------
	// (circle-profile :radius 1 :segments 8) / (rect-profile :width 2 :height 1)
	// -----------------------------------------------------------------------
	env.AddFunction("circle_profile", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		spec := graph.ProfileSpec{Kind: graph.ProfileCircle, Segments: g.Defaults.ProfileSegments}
		for _, err := range []error{
			kwFloat(pa, "circle-profile", "radius", &spec.Radius),
			kwInt(pa, "circle-profile", "segments", &spec.Segments),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpProfile{spec: spec}, nil
	})

	env.AddFunction("rect_profile", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		spec := graph.ProfileSpec{Kind: graph.ProfileRect}
		for _, err := range []error{
			kwFloat(pa, "rect-profile", "width", &spec.Width),
			kwFloat(pa, "rect-profile", "height", &spec.Height),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpProfile{spec: spec}, nil
	})

	// -----------------------------------------------------------------------
	// (circle-ring :radius 2 :center (vec3 0 0 0) :segments 8)
	// (rect-ring :width 2 :depth 2 :center (vec3 0 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("circle_ring", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		spec := graph.RingSpec{Kind: graph.ProfileCircle, Segments: g.Defaults.ProfileSegments}
		for _, err := range []error{
			kwFloat(pa, "circle-ring", "radius", &spec.Radius),
			kwVec3(pa, "circle-ring", "center", &spec.Center),
			kwInt(pa, "circle-ring", "segments", &spec.Segments),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpRing{spec: spec}, nil
	})

	env.AddFunction("rect_ring", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		spec := graph.RingSpec{Kind: graph.ProfileRect}
		for _, err := range []error{
			kwFloat(pa, "rect-ring", "width", &spec.Width),
			kwFloat(pa, "rect-ring", "depth", &spec.Depth),
			kwVec3(pa, "rect-ring", "center", &spec.Center),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpRing{spec: spec}, nil
	})

	// -----------------------------------------------------------------------
	// (line-path :from (vec3 0 0 0) :to (vec3 0 10 0) :segments 5)
	// (curve-path :points (list (vec3 ...) ...) :samples 6)
	// -----------------------------------------------------------------------
	env.AddFunction("line_path", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		spec := graph.PathSpec{Kind: graph.PathLine, Segments: 1}
		for _, err := range []error{
			kwVec3(pa, "line-path", "from", &spec.From),
			kwVec3(pa, "line-path", "to", &spec.To),
			kwInt(pa, "line-path", "segments", &spec.Segments),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpPath{spec: spec}, nil
	})

	env.AddFunction("curve_path", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		spec := graph.PathSpec{Kind: graph.PathCurve, SamplesPerSegment: 8}
		if err := kwInt(pa, "curve-path", "samples", &spec.SamplesPerSegment); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["points"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("curve-path: points: %w", err)
			}
			for i, item := range items {
				p, err := toVec3(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("curve-path: point %d: %w", i, err)
				}
				spec.Points = append(spec.Points, p)
			}
		}
		return &sexpPath{spec: spec}, nil
	})

	// -----------------------------------------------------------------------
	// (sweep :profile (circle-profile ...) :path (line-path ...) :closed true)
	// -----------------------------------------------------------------------
	env.AddFunction("sweep", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		sd := graph.SweepData{Closed: true}
		if v, ok := pa.kw["profile"]; ok {
			p, err := toProfile(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sweep: profile: %w", err)
			}
			sd.Profile = p
		}
		if v, ok := pa.kw["path"]; ok {
			p, err := toPath(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sweep: path: %w", err)
			}
			sd.Path = p
		}
		if err := kwBool(pa, "sweep", "closed", &sd.Closed); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpShape{kind: graph.NodeSweep, data: sd}, nil
	})

	// -----------------------------------------------------------------------
	// (pipe :radius 0.5 :segments 10 :path p :closed true)
	// (rail :width 2 :height 1 :path p :closed false)
	// Sugar over sweep with a circular / rectangular profile.
	// -----------------------------------------------------------------------
	env.AddFunction("pipe", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		sd := graph.SweepData{
			Profile: graph.ProfileSpec{Kind: graph.ProfileCircle, Segments: g.Defaults.ProfileSegments},
			Closed:  true,
		}
		for _, err := range []error{
			kwFloat(pa, "pipe", "radius", &sd.Profile.Radius),
			kwInt(pa, "pipe", "segments", &sd.Profile.Segments),
			kwBool(pa, "pipe", "closed", &sd.Closed),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		if v, ok := pa.kw["path"]; ok {
			p, err := toPath(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("pipe: path: %w", err)
			}
			sd.Path = p
		}
		return &sexpShape{kind: graph.NodeSweep, data: sd}, nil
	})

	env.AddFunction("rail", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		sd := graph.SweepData{
			Profile: graph.ProfileSpec{Kind: graph.ProfileRect},
			Closed:  true,
		}
		for _, err := range []error{
			kwFloat(pa, "rail", "width", &sd.Profile.Width),
			kwFloat(pa, "rail", "height", &sd.Profile.Height),
			kwBool(pa, "rail", "closed", &sd.Closed),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		if v, ok := pa.kw["path"]; ok {
			p, err := toPath(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rail: path: %w", err)
			}
			sd.Path = p
		}
		return &sexpShape{kind: graph.NodeSweep, data: sd}, nil
	})

	// -----------------------------------------------------------------------
	// (loft :rings (list (circle-ring ...) (rect-ring ...)) :closed true
	//       :steps 2)
	// -----------------------------------------------------------------------
	env.AddFunction("loft", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		ld := graph.LoftData{Steps: g.Defaults.LoftSteps, Closed: true}
		for _, err := range []error{
			kwBool(pa, "loft", "closed", &ld.Closed),
			kwInt(pa, "loft", "steps", &ld.Steps),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		if v, ok := pa.kw["rings"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("loft: rings: %w", err)
			}
			for i, item := range items {
				r, err := toRing(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("loft: ring %d: %w", i, err)
				}
				ld.Rings = append(ld.Rings, r)
			}
		}
		return &sexpShape{kind: graph.NodeLoft, data: ld}, nil
	})

	// -----------------------------------------------------------------------
	// (draft-box :size (vec3 4 2 4) :center (vec3 0 0 0) :angle 5
	//            :direction (vec3 0 1 0))
	// -----------------------------------------------------------------------
	env.AddFunction("draft_box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		dd := graph.DraftBoxData{Direction: vec3.T{0, 1, 0}}
		for _, err := range []error{
			kwVec3(pa, "draft-box", "size", &dd.Size),
			kwVec3(pa, "draft-box", "center", &dd.Center),
			kwFloat(pa, "draft-box", "angle", &dd.AngleDeg),
			kwVec3(pa, "draft-box", "direction", &dd.Direction),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpShape{kind: graph.NodeDraft, data: dd}, nil
	})

	// -----------------------------------------------------------------------
	// (draft-cylinder :radius 3 :height 2 :center (vec3 0 0 0) :angle 5
	//                 :segments 32)
	// -----------------------------------------------------------------------
	env.AddFunction("draft_cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		dd := graph.DraftCylinderData{Segments: g.Defaults.DraftSegments}
		for _, err := range []error{
			kwFloat(pa, "draft-cylinder", "radius", &dd.Radius),
			kwFloat(pa, "draft-cylinder", "height", &dd.Height),
			kwVec3(pa, "draft-cylinder", "center", &dd.Center),
			kwFloat(pa, "draft-cylinder", "angle", &dd.AngleDeg),
			kwInt(pa, "draft-cylinder", "segments", &dd.Segments),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpShape{kind: graph.NodeDraft, data: dd}, nil
	})

	// -----------------------------------------------------------------------
	// (draft-extrude :profile (rect-profile ...) :height 1
	//                :center (vec3 0 0 0) :angle 45)
	// -----------------------------------------------------------------------
	env.AddFunction("draft_extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		dd := graph.DraftExtrudeData{}
		if v, ok := pa.kw["profile"]; ok {
			p, err := toProfile(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("draft-extrude: profile: %w", err)
			}
			dd.Profile = p
		}
		for _, err := range []error{
			kwFloat(pa, "draft-extrude", "height", &dd.Height),
			kwVec3(pa, "draft-extrude", "center", &dd.Center),
			kwFloat(pa, "draft-extrude", "angle", &dd.AngleDeg),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpShape{kind: graph.NodeDraft, data: dd}, nil
	})

	// -----------------------------------------------------------------------
	// (defpart "name" (torus ...))
	// -----------------------------------------------------------------------
	env.AddFunction("defpart", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("defpart requires a name and a shape expression")
		}

		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: name: %w", err)
		}

		shape, ok := args[1].(*sexpShape)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("defpart: expected shape expression, got %T", args[1])
		}

		id := graph.NewNodeID("defpart/" + partName)
		g.AddNode(&graph.Node{
			ID:   id,
			Kind: shape.kind,
			Name: partName,
			Data: shape.data,
		})

		return &sexpNodeRef{id: id, name: partName}, nil
	})

	// -----------------------------------------------------------------------
	// (part "name")
	// -----------------------------------------------------------------------
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("part requires a name argument")
		}

		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}

		n := g.Lookup(partName)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("part: no part named %q", partName)
		}

		return &sexpNodeRef{id: n.ID, name: partName}, nil
	})

	// -----------------------------------------------------------------------
	// (place (part "ring") :at (vec3 0 0 19) :rotate (vec3 0 90 0)
	//        :scale (vec3 2 2 2))
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a part reference as first argument")
		}
		childID, err := toNodeRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: part: %w", err)
		}

		dd := graph.DeltaData{}
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			dd.Translation = &vec
		}
		if v, ok := pa.kw["rotate"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: rotate: %w", err)
			}
			dd.RotationDeg = &vec
		}
		if v, ok := pa.kw["scale"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: scale: %w", err)
			}
			dd.Scale = &vec
		}

		return addModifierNode(g, "place", graph.NodeTransform, childID, dd), nil
	})

	// -----------------------------------------------------------------------
	// (translate ref :by (vec3 0 10 0)) / (rotate ref :by (vec3 0 90 0)) /
	// (scale ref :by (vec3 2 2 2)) — single-field placements.
	// -----------------------------------------------------------------------
	singleDelta := func(form string, set func(*graph.DeltaData, *vec3.T)) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			if len(pa.positional) < 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires a part reference as first argument", form)
			}
			childID, err := toNodeRef(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: part: %w", form, err)
			}
			v, ok := pa.kw["by"]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("%s requires a :by vector", form)
			}
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: by: %w", form, err)
			}
			dd := graph.DeltaData{}
			set(&dd, &vec)
			return addModifierNode(g, form, graph.NodeTransform, childID, dd), nil
		}
	}

	env.AddFunction("translate", singleDelta("translate", func(d *graph.DeltaData, v *vec3.T) { d.Translation = v }))
	env.AddFunction("rotate", singleDelta("rotate", func(d *graph.DeltaData, v *vec3.T) { d.RotationDeg = v }))
	env.AddFunction("scale", singleDelta("scale", func(d *graph.DeltaData, v *vec3.T) { d.Scale = v }))

	// -----------------------------------------------------------------------
	// (mirror ref :plane :xz :keep true)
	// -----------------------------------------------------------------------
	env.AddFunction("mirror", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("mirror requires a part reference as first argument")
		}
		childID, err := toNodeRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mirror: part: %w", err)
		}

		md := graph.MirrorData{Plane: "xz", KeepOriginal: true}
		if v, ok := pa.kw["plane"]; ok {
			p, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("mirror: plane: %w", err)
			}
			md.Plane = p
		}
		if err := kwBool(pa, "mirror", "keep", &md.KeepOriginal); err != nil {
			return zygo.SexpNull, err
		}

		return addModifierNode(g, "mirror", graph.NodeModifier, childID, md), nil
	})

	// -----------------------------------------------------------------------
	// (draft ref :angle 5 :point (vec3 0 0 0) :normal (vec3 0 1 0))
	// -----------------------------------------------------------------------
	env.AddFunction("draft", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("draft requires a part reference as first argument")
		}
		childID, err := toNodeRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("draft: part: %w", err)
		}

		dd := graph.DraftMeshData{PlaneNormal: vec3.T{0, 1, 0}}
		for _, err := range []error{
			kwFloat(pa, "draft", "angle", &dd.AngleDeg),
			kwVec3(pa, "draft", "point", &dd.PlanePoint),
			kwVec3(pa, "draft", "normal", &dd.PlaneNormal),
		} {
			if err != nil {
				return zygo.SexpNull, err
			}
		}

		return addModifierNode(g, "draft", graph.NodeModifier, childID, dd), nil
	})

	// -----------------------------------------------------------------------
	// (assembly "name" (place ...) (mirror ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("assembly", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("assembly requires a name argument")
		}

		asmName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("assembly: name: %w", err)
		}

		var children []graph.NodeID
		for i := 1; i < len(args); i++ {
			ref, ok := args[i].(*sexpNodeRef)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("assembly: child %d: expected node reference, got %T (%s)",
					i, args[i], args[i].SexpString(nil))
			}
			children = append(children, ref.id)
		}

		id := graph.NewNodeID("assembly/" + asmName)
		g.AddNode(&graph.Node{
			ID:       id,
			Kind:     graph.NodeGroup,
			Name:     asmName,
			Children: children,
			Data:     graph.GroupData{},
		})
		g.AddRoot(id)

		return &sexpNodeRef{id: id, name: asmName}, nil
	})
}

// addModifierNode wraps a child node in a new placement or modifier node
// and registers it on the graph. IDs are derived from the child's name
// when it has one, falling back to an anonymous counter.
func addModifierNode(g *graph.DesignGraph, form string, kind graph.NodeKind, childID graph.NodeID, data graph.NodeData) zygo.Sexp {
	idPath := form + "/" + nextNodeSuffix()
	if child := g.Get(childID); child != nil && child.Name != "" {
		idPath = form + "/" + child.Name + "/" + nextNodeSuffix()
	}
	id := graph.NewNodeID(idPath)

	g.AddNode(&graph.Node{
		ID:       id,
		Kind:     kind,
		Children: []graph.NodeID{childID},
		Data:     data,
	})

	return &sexpNodeRef{id: id}
}
