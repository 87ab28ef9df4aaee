// Package proof binds recorded score inputs to the composites they
// produced via deterministic hashing, so that any score can later be
// shown reproducible from its recorded inputs - or shown to have drifted.
package proof

import (
	"fmt"
	"strings"
	"sync"

	"moltbench/domain/bench"
	"moltbench/domain/core"
	"moltbench/internal"
	"moltbench/internal/ledger"
)

// MethodologyVersion stamps proofs with the scoring methodology they were
// issued under. Bump only when the composite weights or the serialization
// form change, which invalidates comparability with older proofs.
const MethodologyVersion = "1.0.0"

type proofKey struct {
	agent core.AgentID
	hash  core.InputHash
}

// Prover generates and verifies reproducibility proofs over the score
// ledger. Stored proofs are immutable: regenerating after the ledger
// changed produces a new record under a new input hash, never an
// overwrite.
type Prover struct {
	mu     sync.RWMutex
	scores *ledger.ScoreLedger
	proofs map[proofKey]bench.ReproducibilityProof
	logger *internal.Logger
}

// NewProver creates a prover over the given score ledger
func NewProver(scores *ledger.ScoreLedger, logger *internal.Logger) *Prover {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Prover{
		scores: scores,
		proofs: make(map[proofKey]bench.ReproducibilityProof),
		logger: logger,
	}
}

// serializeInputs produces the canonical byte form of the ordered input
// tuples. The field order, %.6f precision, and separators are part of the
// parity contract with any reimplementation used for verification.
func serializeInputs(entries []bench.ScoreEntry) []byte {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%s|%.6f|%.6f|%.6f|%.6f|%.6f",
			e.RoundID,
			e.Metrics.Coherence,
			e.Metrics.Depth,
			e.Metrics.HallucinationRate,
			e.Metrics.Discipline,
			e.Metrics.Confidence,
		)
	}
	return []byte(b.String())
}

// serializeOutputs produces the canonical byte form of the ordered
// composite sequence.
func serializeOutputs(entries []bench.ScoreEntry) []byte {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%.6f", e.Composite)
	}
	return []byte(b.String())
}

// computeInputHash hashes the agent's current ledger slice
func computeInputHash(entries []bench.ScoreEntry) core.InputHash {
	return core.NewInputHash(serializeInputs(entries))
}

// Generate builds a proof from the agent's current ledger entries and
// stores it keyed by (agent, input hash). An agent with no recorded data
// gets a sentinel non-verifiable proof rather than an error.
func (p *Prover) Generate(agentID core.AgentID) bench.ReproducibilityProof {
	entries := p.scores.AgentEntries(agentID)

	if len(entries) == 0 {
		return bench.ReproducibilityProof{
			ComputedAt:         core.Now(),
			MethodologyVersion: MethodologyVersion,
			Verifiable:         false,
			InputSummary:       bench.ProofInputSummary{AgentID: agentID},
		}
	}

	rounds := make(map[core.RoundID]bool, len(entries))
	for _, e := range entries {
		rounds[e.RoundID] = true
	}

	pf := bench.ReproducibilityProof{
		InputHash:          computeInputHash(entries),
		OutputHash:         core.NewOutputHash(serializeOutputs(entries)),
		ComputedAt:         core.Now(),
		MethodologyVersion: MethodologyVersion,
		Verifiable:         true,
		InputSummary: bench.ProofInputSummary{
			AgentID:    agentID,
			TradeCount: len(entries),
			RoundCount: len(rounds),
			DateRange: core.DateRange{
				From: entries[0].Timestamp,
				To:   entries[len(entries)-1].Timestamp,
			},
		},
	}

	key := proofKey{agent: agentID, hash: pf.InputHash}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.proofs[key]; !exists {
		// Proofs are never overwritten; regeneration over identical
		// data is a no-op, over changed data a new key.
		p.proofs[key] = pf
	}
	return p.proofs[key]
}

// Verify looks up the stored proof for (agent, inputHash) and recomputes
// the input hash from the current ledger contents. A mismatch with a
// stored record means the underlying data changed after issuance - the
// core tamper/drift detection mechanism - and is surfaced as a
// data-integrity incident.
func (p *Prover) Verify(agentID core.AgentID, inputHash core.InputHash) bench.VerificationResult {
	p.mu.RLock()
	stored, exists := p.proofs[proofKey{agent: agentID, hash: inputHash}]
	p.mu.RUnlock()

	result := bench.VerificationResult{
		StoredHash: inputHash,
		VerifiedAt: core.Now(),
	}

	if !exists {
		result.Message = fmt.Sprintf("no proof found for agent %s with input hash %s", agentID, inputHash)
		return result
	}

	current := computeInputHash(p.scores.AgentEntries(agentID))
	result.ComputedHash = current

	if current != stored.InputHash {
		result.Message = fmt.Sprintf(
			"input hash mismatch for agent %s: stored %s, current ledger yields %s; the score data changed after the proof was issued",
			agentID, stored.InputHash, current)
		p.logger.Error("proof verification failed for agent %s: %v", agentID,
			core.NewHashMismatchError(core.Hash(stored.InputHash), core.Hash(current)))
		return result
	}

	result.Verified = true
	result.Message = fmt.Sprintf("proof verified for agent %s: ledger contents match the recorded inputs", agentID)
	return result
}

// Lookup returns the stored proof for (agent, inputHash), if any
func (p *Prover) Lookup(agentID core.AgentID, inputHash core.InputHash) (bench.ReproducibilityProof, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pf, ok := p.proofs[proofKey{agent: agentID, hash: inputHash}]
	return pf, ok
}

// Count returns the number of stored proofs
func (p *Prover) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.proofs)
}
