package bribehackconst

const (
	// MaxCommitments is the maximum number of bounty ids a single hacker
	// commitment may reference. The limit is additive: the size of a new
	// submission is checked against the count stored by the previous one,
	// not against the resulting state.
	MaxCommitments = 3

	// ErrNoBounties is returned on commitment submission with an empty
	// bounty id list.
	ErrNoBounties = "no bounty ids provided"

	// ErrExceedsMaxCommitments prefixes the failure of the additive
	// commitment throttle. Rendered values of the stored count, the
	// attempted count and MaxCommitments follow the prefix.
	ErrExceedsMaxCommitments = "exceeds max commitments"

	// ErrZeroSponsorship is returned on sponsorship with a non-positive
	// GAS amount.
	ErrZeroSponsorship = "zero sponsorship value"

	// ErrZeroBribe is returned on bribe with a non-positive GAS amount.
	ErrZeroBribe = "zero bribe value"

	// ErrInvalidEndpoint is returned on deployment with a missing or
	// malformed LayerZero endpoint contract hash.
	ErrInvalidEndpoint = "invalid LayerZero endpoint"

	// ErrNotEndpoint is returned when lzReceive is invoked by anything
	// but the configured endpoint contract.
	ErrNotEndpoint = "lzReceive must be called by the endpoint"
)

// Names of notifications thrown by the contract. Off-chain indexers match
// on them, so they are part of the public contract.
const (
	NewCommitmentEvent      = "NewCommitment"
	BountySponsoredEvent    = "BountySponsored"
	HackerBribedEvent       = "HackerBribed"
	CrossChainSnapshotEvent = "CrossChainSnapshot"
	LZMessageSentEvent      = "LZMessageSent"
)
