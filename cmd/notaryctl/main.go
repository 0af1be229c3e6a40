// notaryctl drives the notary workflow against a running API server in the
// strict dashboard order: login, upload, sign, download, verify, then the
// audit trail. Each step is attempted once and a failure stops the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"notary-portal/notary-portal-backend/internal/client"
)

func main() {
	var (
		server   = flag.String("server", "http://localhost:3001", "notary API base URL")
		username = flag.String("username", "notary1", "notary username")
		password = flag.String("password", "", "notary password")
		output   = flag.String("output", "", "where to save the signed PDF (default: signed file name in cwd)")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: notaryctl [flags] <document.pdf>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "a password is required (-password)")
		os.Exit(2)
	}
	document := flag.Arg(0)

	if err := run(*server, *username, *password, document, *output); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(server, username, password, document, output string) error {
	ctx := context.Background()
	api := client.New(server)

	login, err := api.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	fmt.Printf("Logged in as %s (notary %d)\n", login.Notary.Name, login.Notary.ID)

	upload, err := api.Upload(ctx, document)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	fmt.Printf("Uploaded %s as %s (document %s, %d bytes)\n",
		upload.OriginalName, upload.Filename, upload.DocumentID, upload.Size)

	signed, err := api.Sign(ctx, upload.DocumentID, upload.Filename)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}
	fmt.Printf("Signed: %s\nHash:   %s\n", signed.SignedFilename, signed.Hash)

	data, err := api.Download(ctx, signed.SignedFilename)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	if output == "" {
		output = filepath.Base(signed.SignedFilename)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("save signed file: %w", err)
	}
	fmt.Printf("Saved signed document to %s\n", output)

	verdict, err := api.Verify(ctx, signed.SignedFilename, signed.Hash)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	fmt.Printf("Verification: %s\n", verdict.Status)

	entries, err := api.AuditTrail(ctx)
	if err != nil {
		return fmt.Errorf("audit trail: %w", err)
	}

	fmt.Println("\nAudit trail:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOTARY\tTIMESTAMP\tORIGINAL\tSIGNED\tHASH")
	for _, e := range entries {
		hash := e.Hash
		if len(hash) > 12 {
			hash = hash[:12] + "..."
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.NotaryID, e.Timestamp, e.OriginalFile, e.SignedFile, hash)
	}
	return w.Flush()
}
