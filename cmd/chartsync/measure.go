package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/exitcode"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/logging"
	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

var measureFlags struct {
	table  string
	region string
	key    string
	value  string
}

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Read or write a region-namespaced assessment value",
}

var measureSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Write --value under region:key in --table",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Setup(cfg.LogFormat)
		s := openSession(log)
		_, err := s.SetMeasurement(measureFlags.table, measureFlags.region, measureFlags.key, measureFlags.value)
		exitOnEditError(log, err)
		saveSession(log, s)
	},
}

var measureGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Read region:key from --table, falling back to a legacy bare key",
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.Setup(cfg.LogFormat)
		s := openSession(log)
		v, ok, err := s.Measurement(measureFlags.table, measureFlags.region, measureFlags.key)
		exitOnEditError(log, err)
		if !ok {
			fmt.Fprintln(os.Stderr, "no value recorded")
			os.Exit(exitcode.ValidationError)
		}
		fmt.Println(v)
	},
}

func init() {
	tables := strings.Join(model.TableNames(), ", ")
	for _, c := range []*cobra.Command{measureSetCmd, measureGetCmd} {
		requireFile(c)
		f := c.Flags()
		f.StringVar(&measureFlags.table, "table", "", "Assessment table: "+tables+" (required)")
		f.StringVar(&measureFlags.region, "region", "", "Catalog region key (required for set; empty reads a legacy bare key)")
		f.StringVar(&measureFlags.key, "key", "", "Base key, e.g. Flexion_L or C5-L-dermatome (required)")
		_ = c.MarkFlagRequired("table")
		_ = c.MarkFlagRequired("key")
	}
	measureSetCmd.Flags().StringVar(&measureFlags.value, "value", "", "Value to record")
	measureCmd.AddCommand(measureSetCmd, measureGetCmd)
	rootCmd.AddCommand(measureCmd)
}
