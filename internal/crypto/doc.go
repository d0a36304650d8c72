// Package crypto holds the key handling behind simulated discovery tokens.
//
// A token advertises an X25519 session key signed by a throwaway Ed25519
// key (NewSessionKeys, VerifySessionKey). Two peers holding each other's
// tokens agree on a shared value in [0, 1) through X25519 and HKDF-SHA256
// (SessionKeys.SharedUnit, DeriveUnit). Fingerprint gives a short display
// form of any token.
//
// Private key material is zeroed on a best-effort basis once it is no longer
// needed.
package crypto
