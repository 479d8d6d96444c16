/*
Package bribehack implements Bribehack contract.

Bribehack contract is a hackathon accounting ledger. It records three kinds of
publicly readable facts: hacker commitments to bounty ids, sponsor GAS
deposits into per-bounty prize pools, and direct GAS bribes addressed to
hackers. Every mutating method throws a notification mirrored by off-chain
indexers, so notification shapes are part of the public contract and must not
change between versions.

A hacker holds at most one live commitment of up to three bounty ids;
submitting a new commitment replaces the previous one wholesale. The
three-id limit is additive: the size of a new submission is added to the
count stored by the previous commitment before comparison, which throttles
resubmission even though storage never holds more than three ids per hacker.

Deposited and bribed GAS accumulates on the contract account. The contract
deliberately has no withdrawal or settlement method; bribe acceptance is an
off-chain concern.

Cross-chain methods are a mock built around a single-method endpoint contract
whose hash is fixed at deployment. The endpoint is expected to expose

	send(dstChainId, destination, payload, refundAddress, zroPaymentAddress, adapterParams)

and accept GAS relay fees. Any contract satisfying that shape is a valid
collaborator.

# Contract notifications

NewCommitment notification. This notification is produced when a hacker
stores a new commitment, replacing any previous one.

	NewCommitment:
	  - name: hacker
	    type: Hash160
	  - name: bountyIds
	    type: Array
	  - name: ipfsHash
	    type: String

BountySponsored notification. This notification is produced on every prize
pool deposit.

	BountySponsored:
	  - name: bountyId
	    type: String
	  - name: sponsor
	    type: Hash160
	  - name: amount
	    type: Integer

HackerBribed notification. This notification is produced on every bribe
payment.

	HackerBribed:
	  - name: briber
	    type: Hash160
	  - name: hacker
	    type: Hash160
	  - name: bountyId
	    type: String
	  - name: amount
	    type: Integer

CrossChainSnapshot notification. This notification is produced when an
inbound cross-chain payload is observed via lzReceive.

	CrossChainSnapshot:
	  - name: hacker
	    type: Hash160
	  - name: bountyId
	    type: String

LZMessageSent notification. This notification is produced before an outbound
payload is handed to the endpoint contract.

	LZMessageSent:
	  - name: dstChainId
	    type: Integer
	  - name: destination
	    type: ByteArray
	  - name: payload
	    type: ByteArray
*/
package bribehack

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'e' -> interop.Hash160
   hash of the LayerZero endpoint contract set at deployment
 - c<interop.Hash160> -> std.Serialize(Commitment)
   current commitment of each hacker
 - n<interop.Hash160> -> int
   bounty id count of each hacker's current commitment
 - b<string> -> std.Serialize(Bounty)
   funding record per bounty id, created lazily by the first sponsorship
 - r<interop.Hash160> -> std.Serialize([]Bribe)
   complete bribe history per hacker

# Accounting
Contract stores every commitment, sponsorship and bribe ever recorded.
Records are never deleted and GAS received by the contract account is never
paid out.
*/
