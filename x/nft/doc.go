/*
Package nft maintains the registry of non-fungible tokens.

Each token has a unique 8 byte ID assigned from a sequence at mint
time, an immutable URI pointing at the token metadata and exactly one
owner address. Ownership can only change through the Transfer method,
which verifies the current owner.
*/
package nft
