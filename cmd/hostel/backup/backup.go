// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"filippo.io/age"
	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/hostel/cmd/hostel/cli"
	"github.com/bureau-foundation/hostel/lib/sealed"
	"github.com/bureau-foundation/hostel/lib/codec"
	"github.com/bureau-foundation/hostel/lib/snapshot"
	"github.com/bureau-foundation/hostel/lib/version"
)

// --- create ---

type createParams struct {
	cli.StoreFlags
	cli.JSONOutput
	Output      string   `json:"output"      flag:"output,o"      desc:"snapshot file to write" required:"true"`
	Compression string   `json:"compression" flag:"compression"   desc:"payload compression: zstd, lz4 or none" default:"zstd"`
	Recipients  []string `json:"recipients"  flag:"recipient,r"   desc:"age public key to seal the snapshot to (repeatable)"`
}

func createCommand() *cli.Command {
	var params createParams

	return &cli.Command{
		Name:    "create",
		Summary: "Write a snapshot of every record",
		Description: `Snapshot every student and ticket into one file. With --recipient the
payload is encrypted to each given age public key; restoring then needs
one of the matching identities.

Compression falls back to none when it would not shrink the payload.`,
		Usage: "hostel backup create --output PATH [--compression zstd|lz4|none] [--recipient KEY]...",
		Examples: []cli.Example{
			{
				Description: "Nightly compressed snapshot",
				Command:     "hostel backup create -o /backups/hostel-$(date +%F).snap",
			},
			{
				Description: "Snapshot sealed to the warden's key",
				Command:     "hostel backup create -o hostel.snap -r age1...",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 0, "hostel backup create --output PATH"); err != nil {
				return err
			}
			compression, err := snapshot.ParseCompression(params.Compression)
			if err != nil {
				return cli.Validation("%w", err)
			}
			for _, recipient := range params.Recipients {
				if err := sealed.ParsePublicKey(recipient); err != nil {
					return cli.Validation("--recipient %q: %w", recipient, err).
						WithHint("Generate a keypair with 'hostel backup keygen'.")
				}
			}

			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}

			data, info, err := snapshot.Encode(store.Session.Registry.Dataset(), snapshot.Options{
				Compression: compression,
				Recipients:  params.Recipients,
				Clock:       store.Session.Clock(),
				Producer:    "hostel " + version.Short(),
			})
			if err != nil {
				return cli.Internal("%w", err)
			}
			if err := snapshot.WriteFile(params.Output, data); err != nil {
				return cli.Internal("%w", err)
			}
			store.Logger.Info("snapshot written",
				"path", params.Output,
				"id", info.ID,
				"compression", info.Compression,
				"encrypted", info.Encrypted,
				"bytes", info.Size,
			)

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, info); done {
				return err
			}
			fmt.Fprintf(out, "SNAPSHOT %s WRITTEN TO %s (%s)\n", info.ID, params.Output, humanize.Bytes(uint64(info.Size)))
			return nil
		},
	}
}

// --- inspect ---

type inspectParams struct {
	cli.JSONOutput
	Diagnostic bool `json:"-" flag:"diagnostic" desc:"print the whole file in CBOR diagnostic notation"`
}

func inspectCommand() *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Describe a snapshot without restoring it",
		Description: `Print a snapshot's header: id, creation time, compression, encryption,
digest and sizes. Record counts are only known for unencrypted
snapshots.

--diagnostic dumps the raw envelope in CBOR diagnostic notation, with
the (compressed, possibly sealed) payload as a byte string.`,
		Usage:  "hostel backup inspect PATH",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 1, "hostel backup inspect PATH"); err != nil {
				return err
			}
			data, err := snapshot.ReadFile(args[0])
			if err != nil {
				return fileError(err)
			}
			out := cli.StreamsFrom(ctx).Out
			if params.Diagnostic {
				diagnostic, err := codec.Diagnose(data)
				if err != nil {
					return cli.Validation("%s: %w", args[0], err)
				}
				fmt.Fprintln(out, diagnostic)
				return nil
			}

			info, err := snapshot.Inspect(data)
			if err != nil {
				return cli.Validation("%s: %w", args[0], err)
			}

			if done, err := params.EmitJSON(out, info); done {
				return err
			}
			return writeInfo(out, info, time.Now())
		},
	}
}

func writeInfo(w io.Writer, info snapshot.Info, now time.Time) error {
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "ID:\t%s\n", info.ID)
	if info.Producer != "" {
		fmt.Fprintf(writer, "PRODUCER:\t%s\n", info.Producer)
	}
	fmt.Fprintf(writer, "CREATED:\t%s (%s)\n",
		info.CreatedAt.UTC().Format(time.RFC3339),
		humanize.RelTime(info.CreatedAt, now, "ago", "from now"))
	fmt.Fprintf(writer, "COMPRESSION:\t%s\n", info.Compression)
	fmt.Fprintf(writer, "ENCRYPTED:\t%t\n", info.Encrypted)
	fmt.Fprintf(writer, "DIGEST:\t%s\n", info.Digest)
	fmt.Fprintf(writer, "PAYLOAD:\t%s stored, %s raw\n",
		humanize.Bytes(uint64(info.PayloadSize)), humanize.Bytes(uint64(info.Size)))
	if info.Encrypted {
		fmt.Fprintf(writer, "RECORDS:\tsealed\n")
	} else {
		fmt.Fprintf(writer, "STUDENTS:\t%d\n", info.Students)
		fmt.Fprintf(writer, "TICKETS:\t%d\n", info.Tickets)
	}
	return writer.Flush()
}

// --- restore ---

type restoreParams struct {
	cli.StoreFlags
	cli.JSONOutput
	Identity string `json:"identity" flag:"identity,i" desc:"age identity file for a sealed snapshot"`
}

type restoreResult struct {
	Snapshot snapshot.Info `json:"snapshot"`
	Students int           `json:"students"`
	Tickets  int           `json:"tickets"`
}

func restoreCommand() *cli.Command {
	var params restoreParams

	return &cli.Command{
		Name:    "restore",
		Summary: "Replace every record with a snapshot's contents",
		Description: `Replace the students and tickets on disk with the contents of a
snapshot. The snapshot is fully decoded and validated (digest, unique
ids, capacities) before anything is written; on any error the current
records are left alone.`,
		Usage: "hostel backup restore PATH [--identity FILE]",
		Examples: []cli.Example{
			{
				Description: "Restore a sealed snapshot",
				Command:     "hostel backup restore hostel.snap --identity ~/.config/hostel/backup.key",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 1, "hostel backup restore PATH [--identity FILE]"); err != nil {
				return err
			}
			data, err := snapshot.ReadFile(args[0])
			if err != nil {
				return fileError(err)
			}

			var identities []age.Identity
			if params.Identity != "" {
				identities, err = sealed.ReadIdentityFile(params.Identity)
				if err != nil {
					return cli.Validation("--identity: %w", err)
				}
			}

			dataset, info, err := snapshot.Decode(data, identities)
			if err != nil {
				switch {
				case errors.Is(err, snapshot.ErrEncrypted):
					return cli.Forbidden("%s: %w", args[0], err).WithHint("Pass the identity file with --identity.")
				case errors.Is(err, sealed.ErrNoIdentity):
					return cli.Forbidden("%s: %w", args[0], err)
				}
				return cli.Validation("%s: %w", args[0], err)
			}

			store, err := params.Open(ctx, logger)
			if err != nil {
				return err
			}
			if err := store.Session.Replace(dataset); err != nil {
				return cli.StoreError(err)
			}
			store.Logger.Info("snapshot restored", "path", args[0], "id", info.ID)

			out := cli.StreamsFrom(ctx).Out
			result := restoreResult{Snapshot: info, Students: len(dataset.Students), Tickets: len(dataset.Tickets)}
			if done, err := params.EmitJSON(out, result); done {
				return err
			}
			fmt.Fprintf(out, "RESTORED %d STUDENTS AND %d TICKETS FROM SNAPSHOT %s\n",
				result.Students, result.Tickets, info.ID)
			return nil
		},
	}
}

// --- keygen ---

type keygenParams struct {
	cli.JSONOutput
	Output string `json:"output" flag:"output,o" desc:"write the identity file here (mode 0600) instead of stdout"`
}

type keygenResult struct {
	PublicKey string `json:"public_key"`
	Path      string `json:"path,omitempty"`
}

func keygenCommand() *cli.Command {
	var params keygenParams

	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate an age keypair for sealed snapshots",
		Description: `Generate an X25519 age keypair. The identity (private key) is written
to --output, or printed to stdout in age identity file format. Give the
public key to 'backup create --recipient'.`,
		Usage:  "hostel backup keygen [--output FILE]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args, 0, "hostel backup keygen [--output FILE]"); err != nil {
				return err
			}
			keypair, err := sealed.GenerateKeypair()
			if err != nil {
				return cli.Internal("%w", err)
			}
			identity := keypair.IdentityFile(time.Now().UTC().Format(time.RFC3339))

			out := cli.StreamsFrom(ctx).Out
			if params.Output == "" {
				if params.OutputJSON {
					return cli.Validation("--json requires --output; the identity would otherwise be lost")
				}
				_, err := io.WriteString(out, identity)
				return err
			}

			if err := writeIdentity(params.Output, identity); err != nil {
				return err
			}
			logger.Info("identity written", "path", params.Output, "public_key", keypair.PublicKey)

			result := keygenResult{PublicKey: keypair.PublicKey, Path: params.Output}
			if done, err := params.EmitJSON(out, result); done {
				return err
			}
			fmt.Fprintf(out, "Public key: %s\n", keypair.PublicKey)
			return nil
		},
	}
}

func fileError(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return cli.NotFound("%w", err)
	}
	return cli.Internal("%w", err)
}

// writeIdentity creates path with mode 0600. An existing file is never
// overwritten.
func writeIdentity(path, identity string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return cli.Conflict("%s already exists", path).WithHint("Refusing to overwrite an identity file.")
		}
		return cli.Internal("writing identity: %w", err)
	}
	if _, err := io.WriteString(file, identity); err != nil {
		file.Close()
		return cli.Internal("writing identity: %w", err)
	}
	if err := file.Close(); err != nil {
		return cli.Internal("writing identity: %w", err)
	}
	return nil
}
