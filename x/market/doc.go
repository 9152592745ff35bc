/*
Package market implements the NFT marketplace ledger.

A seller lists a token at a fixed price, paying the configured listing
fee into the market pool. While listed the token is held by the market
escrow address. A buyer purchases with an exact payment, which moves
the full payment to the seller, the configured fee from the pool to
the platform owner and the token to the buyer. The platform owner can
update the configuration, sweep the accumulated pool and recover
stranded escrowed tokens.

Every operation is a single handler, made atomic by the savepoint
decorator and serialized by the re-entrancy guard.
*/
package market
