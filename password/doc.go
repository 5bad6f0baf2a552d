// Package password implements the reversible credential obfuscation applied
// before a password is written to local storage.
//
// # Output format
//
// Obfuscated values are versioned opaque strings:
//
//	v1$<base64url(keystream XOR plaintext)>
//
// The transform is deterministic and total: any input string produces a
// storable value and [Obfuscate] never fails.
//
// # What this package must NOT do
//
//   - Pretend to be a security boundary. Anyone with storage access can
//     recover the plaintext; the backend receives the plaintext over the
//     request channel regardless.
//   - Import any other partsclient package.
package password
