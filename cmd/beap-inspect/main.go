// Command beap-inspect is an auditing tool for BEAP packages. It parses
// a package file, reports its structural shape, and runs the integrity
// and signature stages without decrypting anything.
//
// This is the consumer the SkipSignatureVerification opt-out exists for:
// public-mode packages can be fully audited here, confidential ones are
// checked up to the signature.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	beap "github.com/beapkit/beap-go"
	"github.com/beapkit/beap-go/internal/crypto"
)

func main() {
	skipSignature := flag.Bool("skip-signature", false, "skip signature verification")
	pinnedKeyB64 := flag.String("pinned-key", "", "pinned signer public key (base64url)")
	flag.Parse()

	if flag.NArg() != 1 {
		fatal("usage: beap-inspect [flags] <package.json>")
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fatal("read package: %v", err)
	}

	pkg, err := beap.ParsePackage(raw)
	if err != nil {
		fmt.Println("parse: FAILED")
		os.Exit(1)
	}
	fmt.Println("parse: ok")
	fmt.Printf("  version:  %s\n", pkg.Header.Version)
	fmt.Printf("  encoding: %s (structural: %s)\n", pkg.Header.Encoding, pkg.StructuralMode())
	fmt.Printf("  signer:   alg=%s keyId=%s\n", pkg.Signature.Algorithm, pkg.Signature.KeyID)

	integrity := beap.VerifyIntegrity(pkg)
	printResult("integrity", integrity)
	if !integrity.Valid {
		os.Exit(1)
	}

	if *skipSignature {
		fmt.Println("signature: skipped")
	} else {
		var pinned []byte
		if *pinnedKeyB64 != "" {
			pinned, err = crypto.DecodeBase64(*pinnedKeyB64)
			if err != nil {
				fatal("decode pinned key: %v", err)
			}
		}
		sig, _ := beap.VerifyPackageSignature(pkg, pinned)
		printResult("signature", sig)
		if !sig.Valid {
			os.Exit(1)
		}
	}

	if pub, ok := pkg.Content.(*beap.Public); ok {
		opts := &beap.DecryptOptions{SkipSignatureVerification: *skipSignature}
		if *pinnedKeyB64 != "" {
			pinned, err := crypto.DecodeBase64(*pinnedKeyB64)
			if err != nil {
				fatal("decode pinned key: %v", err)
			}
			opts.SignerPublicKeys = map[string][]byte{pkg.Signature.KeyID: pinned}
		}
		res := beap.Decrypt(pkg, opts)
		if res.Success() {
			out, _ := json.MarshalIndent(res.Package.Capsule, "", "  ")
			fmt.Printf("capsule:\n%s\n", out)
			fmt.Printf("artefacts: %d\n", len(pub.Artefacts))
		} else {
			fmt.Printf("disclosure: %s\n", res.Message)
			os.Exit(1)
		}
	}
}

func printResult(name string, res beap.VerificationResult) {
	if res.Valid {
		fmt.Printf("%s: ok\n", name)
	} else {
		fmt.Printf("%s: FAILED (%s)\n", name, res.Message)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
