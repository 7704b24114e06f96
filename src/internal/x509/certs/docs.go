// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs decodes the certificate and key files handed to the keystore
// converter and the cert-info command. It accepts [PEM] certificate bundles,
// single DER certificates and DER [PKCS7] bundles, and recognizes PEM private
// key blocks (PKCS#1, PKCS#8, SEC 1 and encrypted PKCS#8).
//
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
