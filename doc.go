// Package beap implements the recipient side of the BEAP staged
// package-disclosure protocol: given an opaque, untrusted envelope,
// decide whether the caller is the intended recipient, verify the
// envelope's integrity and authenticity, and only then decrypt and
// expose its contents.
//
// The defining constraint is non-disclosure: every failure before the
// final authorized decryption step is observationally uniform. The
// pipeline never reports which check rejected a package, and an
// ineligible recipient looks no different to an outside observer than a
// malformed envelope.
//
// Basic usage:
//
//	pkg, err := beap.ParsePackage(raw)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	key, err := beap.RecipientKeyFromBytes(secretKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := beap.Decrypt(pkg, &beap.DecryptOptions{
//	    HandshakeID:     "H1",
//	    SenderPublicKey: senderPub,
//	    RecipientKey:    key,
//	})
//	if !result.Success() {
//	    fmt.Println(result.Message) // uniform, non-disclosing
//	    return
//	}
//
//	fmt.Println("Subject:", result.Package.Capsule.Subject)
//
// Confidential (qBEAP) packages are eligibility-gated and encrypted;
// public (pBEAP) packages are plaintext, auditable, and skip the
// eligibility gate entirely. Both variants are signature-verified before
// any content is exposed.
package beap
