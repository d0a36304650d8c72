// Package sim is a software ranging capability.
//
// Each session owns an X25519 key pair and an Ed25519 key that signs it. The
// local discovery token carries both public keys and the signature, so a
// peer can check a token before ranging with it. Two sessions that range with
// each other's tokens derive the same baseline distance from their X25519
// shared secret, and the reported distance oscillates around it.
package sim
