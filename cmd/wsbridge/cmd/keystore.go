package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wsbridge/wsbridge-go/cert"
	"github.com/wsbridge/wsbridge-go/logging"
)

var (
	keystoreOut        string
	keystoreType       string
	keystorePassword   string
	keystoreCommonName string
	keystoreHosts      []string
	truststoreOut      string
)

var keystoreCmd = &cobra.Command{
	Use:   "keystore",
	Short: "Generate a self signed keystore for the sink",
	Long: "Create a self signed certificate and store it with its private key as JKS or PEM.\n" +
		"With --truststore the certificate is also written as a trusted entry into a JKS\n" +
		"truststore, which sources can use instead of trusting all certificates.",
	Args: cobra.NoArgs,
	RunE: runKeystore,
}

func init() {
	keystoreCmd.Flags().StringVar(&keystoreOut, "out", "keystore.jks", "keystore file to write")
	keystoreCmd.Flags().StringVar(&keystoreType, "type", cert.TypeJKS, "keystore type (JKS, PEM)")
	keystoreCmd.Flags().StringVar(&keystorePassword, "password", "changeit", "keystore password")
	keystoreCmd.Flags().StringVar(&keystoreCommonName, "cn", "wsbridge", "certificate common name")
	keystoreCmd.Flags().StringSliceVar(&keystoreHosts, "host", []string{"localhost", "127.0.0.1"}, "host names and addresses the certificate is valid for")
	keystoreCmd.Flags().StringVar(&truststoreOut, "truststore", "", "also write a JKS truststore holding the certificate")
	rootCmd.AddCommand(keystoreCmd)
}

func runKeystore(cmd *cobra.Command, _ []string) error {
	certificate, err := cert.CreateCertificate(keystoreCommonName, keystoreHosts...)
	if err != nil {
		return fmt.Errorf("wsbridge keystore: %w", err)
	}

	var buf bytes.Buffer
	if err := cert.WriteKeyStore(&buf, keystoreType, certificate, keystorePassword); err != nil {
		return fmt.Errorf("wsbridge keystore: %w", err)
	}
	if err := os.WriteFile(keystoreOut, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("wsbridge keystore: %w", err)
	}
	logging.Log().Infof("wrote %s keystore %s", keystoreType, keystoreOut)

	if truststoreOut == "" {
		return nil
	}

	buf.Reset()
	if err := cert.AddTrustedCertificate(nil, &buf, keystorePassword, keystoreCommonName, certificate.Leaf); err != nil {
		return fmt.Errorf("wsbridge keystore: %w", err)
	}
	if err := os.WriteFile(truststoreOut, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("wsbridge keystore: %w", err)
	}
	logging.Log().Infof("wrote truststore %s", truststoreOut)

	return nil
}
