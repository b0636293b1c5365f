// Package domain contains the core entities of the governance backend:
// datasets, quality events, usage records, security reviews, and admin
// accounts. Domain types validate themselves and carry no persistence or
// transport concerns.
package domain
