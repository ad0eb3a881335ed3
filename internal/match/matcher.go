package match

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/polecheck/internal/model"
	"github.com/sells-group/polecheck/internal/resolve"
)

// Config carries the matcher's tolerances.
type Config struct {
	// HeightToleranceFt is the allowed height difference for spec
	// equivalence in tier 3b.
	HeightToleranceFt int
	// DirectRadiusM accepts the nearest candidate without spec
	// corroboration.
	DirectRadiusM float64
	// SpecVerifyRadiusM bounds the spec-verified proximity scan.
	SpecVerifyRadiusM float64
}

// DefaultConfig returns the shipped tolerances: 1 ft height tolerance,
// 1 m direct radius, 5 m spec-verified radius.
func DefaultConfig() Config {
	return Config{HeightToleranceFt: 1, DirectRadiusM: 1.0, SpecVerifyRadiusM: 5.0}
}

// Stats counts match outcomes per tier for one run.
type Stats struct {
	SCID        int
	PoleNumber  int
	CoordDirect int
	CoordSpec   int
	Unmatched   int
	FieldOnly   int
}

// Matched is the total of cross-source pairings.
func (s Stats) Matched() int {
	return s.SCID + s.PoleNumber + s.CoordDirect + s.CoordSpec
}

// Result is one complete comparison run.
type Result struct {
	RunID       string
	Records     []model.MatchedRecord
	Stats       Stats
	DesignCount int
	FieldCount  int
}

// Engine runs tiered matching between the two asset sets. A run is
// single-threaded and deterministic: fixed inputs produce identical
// tier assignments and tie-breaks every time.
type Engine struct {
	cfg Config
	log *zap.Logger
}

// NewEngine creates an engine with the given tolerances; zero-valued
// fields fall back to the defaults.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.HeightToleranceFt == 0 {
		cfg.HeightToleranceFt = def.HeightToleranceFt
	}
	if cfg.DirectRadiusM == 0 {
		cfg.DirectRadiusM = def.DirectRadiusM
	}
	if cfg.SpecVerifyRadiusM == 0 {
		cfg.SpecVerifyRadiusM = def.SpecVerifyRadiusM
	}
	return &Engine{
		cfg: cfg,
		log: zap.L().With(zap.String("component", "matcher")),
	}
}

// Run matches every design asset against the field asset set, tiers in
// strict priority order, first hit winning. A field asset is claimed by
// at most one design asset: once paired it is invisible to every later
// lookup, in all tiers. Field assets nobody claimed are appended as
// field-only records.
func (e *Engine) Run(design, field []model.Asset) *Result {
	fieldPtrs := make([]*model.Asset, len(field))
	for i := range field {
		fieldPtrs[i] = &field[i]
	}
	tables := BuildTables(fieldPtrs)
	claimed := make(map[*model.Asset]bool, len(field))

	res := &Result{
		RunID:       uuid.New().String(),
		DesignCount: len(design),
		FieldCount:  len(field),
	}

	presence := buildPresence(design, field)

	for i := range design {
		d := &design[i]

		f, tier, dist, hasDist := e.matchOne(d, tables, claimed)
		if f != nil {
			claimed[f] = true
		}

		switch tier {
		case model.TierSCID:
			res.Stats.SCID++
		case model.TierPoleNumber:
			res.Stats.PoleNumber++
		case model.TierCoordDirect:
			res.Stats.CoordDirect++
		case model.TierCoordSpec:
			res.Stats.CoordSpec++
		default:
			res.Stats.Unmatched++
		}

		res.Records = append(res.Records, reconcile(d, f, tier, dist, hasDist, presence))
	}

	// Unmatched remainder: field assets no design asset claimed.
	for _, f := range fieldPtrs {
		if claimed[f] {
			continue
		}
		res.Stats.FieldOnly++
		res.Records = append(res.Records, fieldOnlyRecord(f, presence))
	}

	e.log.Info("tiered matching complete",
		zap.String("run_id", res.RunID),
		zap.Int("design_assets", res.DesignCount),
		zap.Int("field_assets", res.FieldCount),
		zap.Int("tier_scid", res.Stats.SCID),
		zap.Int("tier_pole_number", res.Stats.PoleNumber),
		zap.Int("tier_coord_direct", res.Stats.CoordDirect),
		zap.Int("tier_coord_spec", res.Stats.CoordSpec),
		zap.Int("unmatched", res.Stats.Unmatched),
		zap.Int("field_only", res.Stats.FieldOnly),
	)

	return res
}

// matchOne attempts the tiers in strict order for one design asset;
// the first tier yielding an unclaimed candidate wins and later tiers
// are skipped.
func (e *Engine) matchOne(d *model.Asset, tables *Tables, claimed map[*model.Asset]bool) (f *model.Asset, tier model.Tier, dist float64, hasDist bool) {
	// Tier 1: exact sequence id.
	if key := resolve.Digits(d.SCID); key != "" {
		if cand := tables.BySCID(key); cand != nil && !claimed[cand] {
			return cand, model.TierSCID, 0, false
		}
	}

	// Tier 2: exact pole number.
	if key := resolve.PoleNumber(d.PoleNumber); key != "" {
		if cand := tables.ByPoleNumber(key); cand != nil && !claimed[cand] {
			return cand, model.TierPoleNumber, 0, false
		}
	}

	// Tier 3: coordinate proximity, ascending distance.
	if d.Coord != nil {
		for _, c := range tables.Nearby(*d.Coord, e.cfg.SpecVerifyRadiusM) {
			if claimed[c.asset] {
				continue
			}
			// 3a: close enough to accept on distance alone.
			if c.dist < e.cfg.DirectRadiusM {
				return c.asset, model.TierCoordDirect, c.dist, true
			}
			// 3b: needs spec corroboration.
			if resolve.SpecsMatch(d.Spec, c.asset.Spec, e.cfg.HeightToleranceFt) {
				return c.asset, model.TierCoordSpec, c.dist, true
			}
		}
	}

	return nil, model.TierUnmatched, 0, false
}
