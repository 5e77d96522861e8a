// Package votingengine implements the Voting Engine inside the
// election-core context.
//
// The module owns ballot casting (eligibility, active-cycle validation,
// one-vote-per-position-per-cycle enforcement), tally/winner reads over the
// vote ledger, and the admin simulation utility that distributes test votes
// toward per-candidate targets. It keeps business rules in application/domain
// layers and isolates infrastructure concerns behind ports and adapters.
package votingengine
