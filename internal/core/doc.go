// Package core provides the pswdfile credential manager.
//
// A Manager encrypts a password for an identity (username and optional
// host), optionally persists the encoded blob in a BBolt data file, and
// decrypts it again later. Operations include:
//   - Encrypt / SaveToFile: frame and encode a password, store the record
//   - Decrypt / DecryptBlob / GetRecord: recover a password
//   - RemoveRecord / GetAll: maintain the data file
//
// Two incompatible variants exist:
//   - Legacy: standard base64, derived or random key, persists in Encrypt
//   - Revised: URL-safe base64, optional supplied key, explicit SaveToFile
//
// Each operation returns its result and error directly. The manager also
// remembers the error of the last operation for IsError/ErrorMessage.
package core
