/*

Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

This package allows to load configuration from a genesis file and access it
from handlers. The configuration is stored as a singleton per package and any
update is atomic with the rest of the transaction.

*/
package gconf
