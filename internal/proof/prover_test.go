package proof

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moltbench/domain/bench"
	"moltbench/domain/core"
	"moltbench/internal/ledger"
)

func seedLedger(t *testing.T, agent core.AgentID, n int) *ledger.ScoreLedger {
	t.Helper()
	l := ledger.NewScoreLedger(0)
	for i := 0; i < n; i++ {
		l.Record(agent, core.RoundID(fmt.Sprintf("round-%03d", i)), bench.ScoreMetrics{
			Coherence:         0.70 + 0.01*float64(i),
			Depth:             0.65,
			HallucinationRate: 0.10,
			Discipline:        0.80,
			Confidence:        0.60,
		})
	}
	return l
}

func TestGenerateAndVerify_RoundTrip(t *testing.T) {
	l := seedLedger(t, "grok-momentum", 5)
	p := NewProver(l, nil)

	pf := p.Generate("grok-momentum")

	require.True(t, pf.Verifiable)
	require.Len(t, string(pf.InputHash), core.ProofHashLength)
	require.Len(t, string(pf.OutputHash), core.ProofHashLength)
	assert.Equal(t, 5, pf.InputSummary.TradeCount)
	assert.Equal(t, 5, pf.InputSummary.RoundCount)
	assert.Equal(t, MethodologyVersion, pf.MethodologyVersion)

	res := p.Verify("grok-momentum", pf.InputHash)
	assert.True(t, res.Verified)
	assert.Equal(t, pf.InputHash, res.ComputedHash)
}

func TestVerify_DetectsLedgerChange(t *testing.T) {
	l := seedLedger(t, "claude-value", 4)
	p := NewProver(l, nil)
	pf := p.Generate("claude-value")

	// New data lands after the proof was issued.
	l.Record("claude-value", "round-late", bench.ScoreMetrics{
		Coherence: 0.2, Depth: 0.2, HallucinationRate: 0.9, Discipline: 0.1, Confidence: 0.3,
	})

	res := p.Verify("claude-value", pf.InputHash)

	assert.False(t, res.Verified)
	assert.Equal(t, pf.InputHash, res.StoredHash)
	assert.NotEqual(t, pf.InputHash, res.ComputedHash)
	assert.Contains(t, res.Message, "mismatch")
}

func TestGenerate_NoDataIsSentinel(t *testing.T) {
	p := NewProver(ledger.NewScoreLedger(0), nil)

	pf := p.Generate("ghost-agent")

	assert.False(t, pf.Verifiable)
	assert.Empty(t, string(pf.InputHash))
	assert.Zero(t, pf.InputSummary.TradeCount)
	assert.Zero(t, p.Count(), "sentinel proofs are not stored")
}

func TestVerify_UnknownProof(t *testing.T) {
	p := NewProver(seedLedger(t, "grok-momentum", 3), nil)

	res := p.Verify("grok-momentum", core.InputHash("deadbeefdeadbeef"))

	assert.False(t, res.Verified)
	assert.Contains(t, res.Message, "no proof found")
}

func TestGenerate_SameDataSameHash(t *testing.T) {
	a := NewProver(seedLedger(t, "gemini-swing", 6), nil)
	b := NewProver(seedLedger(t, "gemini-swing", 6), nil)

	pfA := a.Generate("gemini-swing")
	pfB := b.Generate("gemini-swing")

	assert.Equal(t, pfA.InputHash, pfB.InputHash, "identical ledgers must hash identically")
	assert.Equal(t, pfA.OutputHash, pfB.OutputHash)
}

func TestGenerate_RegenerationIsNoOp(t *testing.T) {
	p := NewProver(seedLedger(t, "gpt-contrarian", 3), nil)

	first := p.Generate("gpt-contrarian")
	second := p.Generate("gpt-contrarian")

	assert.Equal(t, first.InputHash, second.InputHash)
	assert.Equal(t, first.ComputedAt, second.ComputedAt, "stored proof is returned untouched")
	assert.Equal(t, 1, p.Count())
}
