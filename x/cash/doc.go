/*
Package cash defines a simple wallet holding a native token balance
and a controller to move funds between wallets.

All payments and fee disbursements in the marketplace go through this
package. Balances are stored in the smallest unit as int64 and every
move is balance-conserving, an amount removed from one wallet is
added to exactly one other wallet within the same transaction.
*/
package cash
