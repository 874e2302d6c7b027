package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/fracpay-go/address"
	"github.com/bitfsorg/fracpay-go/config"
	"github.com/bitfsorg/fracpay-go/instruction"
	"github.com/bitfsorg/fracpay-go/ledger"
	"github.com/bitfsorg/fracpay-go/revshare"
	"github.com/bitfsorg/fracpay-go/wallet"
)

func newRootCommand() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "fracpay",
		Short:         "Revenue-splitting ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.dataDir, "datadir", config.DefaultDataDir(), "data directory")
	root.PersistentFlags().StringVar(&g.password, "password", "", "keystore password (default $"+PasswordEnv+")")
	root.PersistentFlags().Uint32Var(&g.account, "account", 0, "HD operator account index")

	root.AddCommand(
		initCommand(g),
		addressCommand(g),
		fundCommand(g),
		createMainCommand(g),
		createRefCommand(g),
		showCommand(g),
	)
	return root
}

func initCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config and create an encrypted operator keystore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := g.passwordOrEnv()
			if err != nil {
				return err
			}
			keystore := wallet.KeystorePath(g.dataDir)
			if _, err := os.Stat(keystore); err == nil {
				return fmt.Errorf("%w: %s", wallet.ErrKeystoreExists, keystore)
			}
			cfg := config.DefaultConfig()
			cfg.DataDir = g.dataDir
			if err := config.SaveConfig(config.ConfigPath(g.dataDir), cfg); err != nil {
				return err
			}

			mnemonic, err := wallet.GenerateMnemonic(wallet.Mnemonic12Words)
			if err != nil {
				return err
			}
			seed, err := wallet.SeedFromMnemonic(mnemonic, "")
			if err != nil {
				return err
			}
			if err := wallet.SaveKeystore(keystore, seed, pw); err != nil {
				return err
			}
			w, err := wallet.New(seed)
			if err != nil {
				return err
			}
			kp, err := w.DeriveOperatorKey(g.account)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mnemonic: %s\n", mnemonic)
			fmt.Fprintf(out, "operator: %s\n", kp.Pubkey)
			return nil
		},
	}
}

func addressCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the operator address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kp, err := g.operator()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), kp.Pubkey)
			return nil
		},
	}
}

func fundCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "fund <lamports>",
		Short: "Credit the operator account from the local faucet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lamports, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("fracpay: lamports: %w", err)
			}
			kp, err := g.operator()
			if err != nil {
				return err
			}
			s, err := g.open()
			if err != nil {
				return err
			}
			defer s.Close()

			var balance uint64
			err = s.store.Update(func(tx ledger.Tx) error {
				if err := ledger.Credit(tx, kp.Pubkey, lamports); err != nil {
					return err
				}
				acct, err := tx.Account(kp.Pubkey)
				if err != nil {
					return err
				}
				balance = acct.Lamports
				return nil
			})
			if err != nil {
				return err
			}
			s.log.Info().Stringer("operator", kp.Pubkey).Uint64("lamports", lamports).Msg("funded operator")
			fmt.Fprintf(cmd.OutOrStdout(), "balance: %d\n", balance)
			return nil
		},
	}
}

// mainSlots derives the MAIN, self-PIECE and self-REF addresses for seed.
func mainSlots(programID address.Pubkey, seed []byte) (m, p, r address.ProgramAddress, err error) {
	if m, err = address.FindProgramAddress(programID, seed); err != nil {
		return
	}
	if p, err = address.FindProgramAddress(programID, revshare.PieceSeed(m.Address, 0)); err != nil {
		return
	}
	r, err = address.FindProgramAddress(programID, revshare.RefSeed(p.Address, 0))
	return
}

func createMainCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "create-main <seed>",
		Short: "Create a MAIN ledger with its self-PIECE and self-REF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := g.operator()
			if err != nil {
				return err
			}
			s, err := g.open()
			if err != nil {
				return err
			}
			defer s.Close()

			m, p, r, err := mainSlots(s.proc.ProgramID(), []byte(args[0]))
			if err != nil {
				return err
			}
			tx := instruction.NewTransaction(instruction.NewCreateMain(kp.Pubkey, m, p, r))
			if err := tx.Sign(kp.PrivateKey); err != nil {
				return err
			}
			if err := s.proc.Execute(cmd.Context(), tx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "main: %s\n", m.Address)
			fmt.Fprintf(out, "piece: %s\n", p.Address)
			fmt.Fprintf(out, "ref: %s\n", r.Address)
			return nil
		},
	}
}

func createRefCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "create-ref <main-seed> <label>",
		Short: "Append a REF to the self-PIECE of a MAIN",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := g.operator()
			if err != nil {
				return err
			}
			s, err := g.open()
			if err != nil {
				return err
			}
			defer s.Close()

			m, p, _, err := mainSlots(s.proc.ProgramID(), []byte(args[0]))
			if err != nil {
				return err
			}
			var piece *revshare.Piece
			err = s.store.View(func(tx ledger.Tx) error {
				acct, err := tx.Account(p.Address)
				if err != nil {
					return err
				}
				piece, err = revshare.PieceCodec.Decode(acct.Data)
				return err
			})
			if err != nil {
				return fmt.Errorf("fracpay: load PIECE %s: %w", p.Address, err)
			}

			r, err := address.FindProgramAddress(s.proc.ProgramID(), revshare.RefSeed(p.Address, piece.RefCount+1))
			if err != nil {
				return err
			}
			ix := instruction.NewCreateRef(kp.Pubkey, m.Address, p.Address, r, []byte(args[1]))
			tx := instruction.NewTransaction(ix)
			if err := tx.Sign(kp.PrivateKey); err != nil {
				return err
			}
			if err := s.proc.Execute(cmd.Context(), tx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ref: %s\n", r.Address)
			return nil
		},
	}
}

// accountView is the JSON form printed by show.
type accountView struct {
	Address  address.Pubkey `json:"address"`
	Lamports uint64         `json:"lamports"`
	Owner    address.Pubkey `json:"owner"`
	Class    string         `json:"class,omitempty"`
	Record   interface{}    `json:"record,omitempty"`
}

type mainView struct {
	Operator   address.Pubkey `json:"operator"`
	Balance    uint64         `json:"balance"`
	NetSum     uint64         `json:"netsum"`
	PieceCount uint16         `json:"piececount"`
}

type pieceView struct {
	Operator  address.Pubkey `json:"operator"`
	Balance   uint64         `json:"balance"`
	NetSum    uint64         `json:"netsum"`
	RefCount  uint16         `json:"refcount"`
	PieceSlug string         `json:"pieceslug"`
}

type refView struct {
	Target      address.Pubkey `json:"target"`
	Fract       uint32         `json:"fract"`
	NetSum      uint64         `json:"netsum"`
	RefSlug     string         `json:"refslug"`
	Connected   bool           `json:"connected"`
	Initialized bool           `json:"initialized"`
	Reflected   bool           `json:"reflected"`
}

// describe decodes acct's data by its size.
func describe(key address.Pubkey, acct *ledger.Account) (accountView, error) {
	v := accountView{Address: key, Lamports: acct.Lamports, Owner: acct.Owner}
	switch len(acct.Data) {
	case revshare.SizeMain:
		m, err := revshare.MainCodec.Decode(acct.Data)
		if err != nil {
			return v, err
		}
		v.Class = m.Flags.Class().String()
		v.Record = mainView{m.Operator, m.Balance, m.NetSum, m.PieceCount}
	case revshare.SizePiece:
		p, err := revshare.PieceCodec.Decode(acct.Data)
		if err != nil {
			return v, err
		}
		v.Class = p.Flags.Class().String()
		v.Record = pieceView{p.Operator, p.Balance, p.NetSum, p.RefCount, p.PieceSlug.String()}
	case revshare.SizeRef:
		r, err := revshare.RefCodec.Decode(acct.Data)
		if err != nil {
			return v, err
		}
		v.Class = r.Flags.Class().String()
		v.Record = refView{r.Target, r.Fract, r.NetSum, r.RefSlug.String(), r.IsConnected(), r.IsInitialized(), r.IsReflected()}
	}
	return v, nil
}

func showCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show <address>",
		Short: "Print an account and its decoded record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := address.Parse(args[0])
			if err != nil {
				return err
			}
			s, err := g.open()
			if err != nil {
				return err
			}
			defer s.Close()

			var acct *ledger.Account
			err = s.store.View(func(tx ledger.Tx) error {
				acct, err = tx.Account(key)
				return err
			})
			if err != nil {
				return err
			}
			v, err := describe(key, acct)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}
}
